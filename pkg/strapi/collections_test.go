package strapi

import (
	"context"
	"testing"

	"github.com/Sternrassler/strapi-client/internal/testutil"
	"github.com/Sternrassler/strapi-client/pkg/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollections_QueryShapes(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	mock.SetJSON("/api/services/order/3", testutil.V5Single(testutil.Item{"id": 3, "title": "Roofing"}))
	mock.SetJSON("/api/company", testutil.V5Single(testutil.Item{"id": 1}))

	c := newTestClient(t, mock, Config{})
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() error
		path  string
		query string
	}{
		{
			name:  "article by slug",
			call:  func() error { _, err := c.ArticleBySlug(ctx, "hello-world"); return err },
			path:  "/api/articles",
			query: "populate[0]=cover&filters[slug][$eq]=hello-world",
		},
		{
			name:  "articles caller sort wins",
			call:  func() error { _, err := c.Articles(ctx, Options{Sort: []string{"title:asc"}}); return err },
			path:  "/api/articles",
			query: "sort[0]=title%3Aasc",
		},
		{
			name:  "projects defaults",
			call:  func() error { _, err := c.Projects(ctx, Options{}); return err },
			path:  "/api/projects",
			query: "populate[0]=images&sort[0]=projectDate%3Adesc",
		},
		{
			name:  "featured projects",
			call:  func() error { _, err := c.FeaturedProjects(ctx); return err },
			path:  "/api/projects",
			query: "populate[0]=images&filters[featured][$eq]=true&sort[0]=projectDate%3Adesc",
		},
		{
			name:  "certifications",
			call:  func() error { _, err := c.Certifications(ctx); return err },
			path:  "/api/certifications",
			query: "populate[0]=logo&sort[0]=name%3Aasc",
		},
		{
			name:  "all testimonials",
			call:  func() error { _, err := c.Testimonials(ctx, false); return err },
			path:  "/api/testimonials",
			query: "populate[0]=avatar&sort[0]=createdAt%3Adesc",
		},
		{
			name:  "featured testimonials",
			call:  func() error { _, err := c.Testimonials(ctx, true); return err },
			path:  "/api/testimonials",
			query: "populate[0]=avatar&filters[featured][$eq]=true&sort[0]=createdAt%3Adesc",
		},
		{
			name:  "active hero",
			call:  func() error { _, err := c.ActiveHero(ctx); return err },
			path:  "/api/heroes",
			query: "populate[0]=backgroundVideo&populate[1]=backgroundImage&filters[isActive][$eq]=true&sort[0]=createdAt%3Adesc",
		},
		{
			name:  "active steps custom route",
			call:  func() error { _, err := c.ActiveSteps(ctx); return err },
			path:  "/api/steps/active",
			query: "",
		},
		{
			name: "steps by color",
			call: func() error {
				_, err := c.StepsByBackgroundColor(ctx, content.StepBackgroundBlue)
				return err
			},
			path:  "/api/steps",
			query: "filters[backgroundColor][$eq]=blue&filters[isActive][$eq]=true&sort[0]=order%3Aasc",
		},
		{
			name:  "section info by slug",
			call:  func() error { _, err := c.SectionInfoBySlug(ctx, "about"); return err },
			path:  "/api/section-infos",
			query: "populate[0]=image&filters[isActive][$eq]=true&filters[slug][$eq]=about",
		},
		{
			name:  "services populate all",
			call:  func() error { _, err := c.Services(ctx, Options{}); return err },
			path:  "/api/services",
			query: "populate=%2A&sort[0]=order%3Aasc",
		},
		{
			name:  "services limited default",
			call:  func() error { _, err := c.ServicesLimited(ctx, 0); return err },
			path:  "/api/services",
			query: "populate=%2A&filters[isActive][$eq]=true&sort[0]=order%3Aasc&pagination[pageSize]=6",
		},
		{
			name:  "featured services",
			call:  func() error { _, err := c.FeaturedServices(ctx); return err },
			path:  "/api/services",
			query: "populate=%2A&filters[featured][$eq]=true&filters[isActive][$eq]=true&sort[0]=order%3Aasc",
		},
		{
			name:  "gallery service by order",
			call:  func() error { _, err := c.GalleryServiceByOrder(ctx, 3); return err },
			path:  "/api/services/order/3",
			query: "",
		},
		{
			name:  "active header",
			call:  func() error { _, err := c.ActiveHeader(ctx); return err },
			path:  "/api/headers",
			query: "populate[0]=logoFile&filters[isActive][$eq]=true&sort[0]=createdAt%3Adesc",
		},
		{
			name:  "title section by identifier",
			call:  func() error { _, err := c.TitleSectionInfoByIdentifier(ctx, "services"); return err },
			path:  "/api/title-section-infos",
			query: "populate[floatingElement1]=true&populate[floatingElement2]=true&populate[image]=true&filters[identifier][$eq]=services",
		},
		{
			name:  "showcase by identifier",
			call:  func() error { _, err := c.ProjectShowcaseByIdentifier(ctx, "home"); return err },
			path:  "/api/project-showcases",
			query: "populate[heroImage]=true&populate[highlights]=true&populate[stats]=true&filters[identifier][$eq]=home",
		},
		{
			name: "project cards filtered",
			call: func() error {
				_, err := c.ProjectCardsFiltered(ctx, ProjectCardFilter{
					Categories: []string{"mantenimiento", "consultoria"},
					Years:      []string{"2024"},
				})
				return err
			},
			path: "/api/project-cards",
			query: "populate[image]=true&populate[tags]=true" +
				"&filters[category][$in][0]=mantenimiento&filters[category][$in][1]=consultoria&filters[year][$in][0]=2024" +
				"&sort[0]=year%3Adesc&sort[1]=createdAt%3Adesc&pagination[pageSize]=50",
		},
		{
			name:  "project cards by status",
			call:  func() error { _, err := c.ProjectCardsByStatus(ctx, "completado"); return err },
			path:  "/api/project-cards",
			query: "populate[image]=true&populate[tags]=true&filters[status][$eq]=completado&sort[0]=createdAt%3Adesc",
		},
		{
			name:  "company",
			call:  func() error { _, err := c.Company(ctx); return err },
			path:  "/api/company",
			query: "populate[0]=logo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.query, mock.LastRawQuery(tt.path))
		})
	}
}

func TestCollections_SingleLookupsReturnNil(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()

	c := newTestClient(t, mock, Config{})
	ctx := context.Background()

	header, err := c.ActiveHeader(ctx)
	require.NoError(t, err)
	assert.Nil(t, header)

	info, err := c.ActiveSectionInfo(ctx)
	require.NoError(t, err)
	assert.Nil(t, info)

	title, err := c.TitleSectionInfoByIdentifier(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, title)

	showcase, err := c.ProjectShowcaseByIdentifier(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, showcase)
}

func TestCollections_GalleryServiceByOrderNotFound(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	mock.SetResponse("/api/services/order/9", testutil.NewNotFoundResponse())

	c := newTestClient(t, mock, Config{})
	_, err := c.GalleryServiceByOrder(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
