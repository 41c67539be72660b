package strapi

import (
	"context"
	"strconv"

	"github.com/Sternrassler/strapi-client/pkg/content"
)

// Collection endpoints.
const (
	EndpointArticles          = "articles"
	EndpointCompany           = "company"
	EndpointProjects          = "projects"
	EndpointCertifications    = "certifications"
	EndpointTestimonials      = "testimonials"
	EndpointHeroes            = "heroes"
	EndpointSteps             = "steps"
	EndpointSectionInfos      = "section-infos"
	EndpointServices          = "services"
	EndpointHeaders           = "headers"
	EndpointTitleSectionInfos = "title-section-infos"
	EndpointProjectShowcases  = "project-showcases"
	EndpointProjectCards      = "project-cards"
)

var (
	sortCreatedDesc = []string{"createdAt:desc"}
	sortOrderAsc    = []string{"order:asc"}
	activeOnly      = Filters{"isActive": Eq(true)}

	heroPopulate     = []string{"backgroundVideo", "backgroundImage"}
	titlePopulate    = map[string]any{"image": true, "floatingElement1": true, "floatingElement2": true}
	showcasePopulate = map[string]any{"heroImage": true, "stats": true, "highlights": true}
	cardPopulate     = map[string]any{"image": true, "tags": true}
	cardSort         = []string{"year:desc", "createdAt:desc"}
)

func slugFilter(slug string) Filters {
	return Filters{"slug": Eq(slug)}
}

func activeSlugFilter(slug string) Filters {
	return Filters{"slug": Eq(slug), "isActive": Eq(true)}
}

// ---- articles ----

// Articles lists articles, newest first.
func (c *Client) Articles(ctx context.Context, opts Options) (*content.ArticlesResponse, error) {
	return Find[content.Article](ctx, c, EndpointArticles, opts.merge(Options{Sort: sortCreatedDesc}))
}

// ArticleBySlug looks up articles by slug with their cover.
func (c *Client) ArticleBySlug(ctx context.Context, slug string) (*content.ArticlesResponse, error) {
	return Find[content.Article](ctx, c, EndpointArticles, Options{
		Populate: []string{"cover"},
		Filters:  slugFilter(slug),
	})
}

// ---- company ----

// Company returns the company single type with its logo.
func (c *Client) Company(ctx context.Context) (*content.CompanyResponse, error) {
	return FindSingle[content.Company](ctx, c, EndpointCompany, Options{Populate: []string{"logo"}})
}

// ---- projects ----

// Projects lists projects by project date, newest first.
func (c *Client) Projects(ctx context.Context, opts Options) (*content.ProjectsResponse, error) {
	return Find[content.Project](ctx, c, EndpointProjects, opts.merge(Options{
		Populate: []string{"images"},
		Sort:     []string{"projectDate:desc"},
	}))
}

// ProjectBySlug looks up projects by slug.
func (c *Client) ProjectBySlug(ctx context.Context, slug string) (*content.ProjectsResponse, error) {
	return Find[content.Project](ctx, c, EndpointProjects, Options{
		Populate: []string{"images"},
		Filters:  slugFilter(slug),
	})
}

// FeaturedProjects lists projects flagged as featured.
func (c *Client) FeaturedProjects(ctx context.Context) (*content.ProjectsResponse, error) {
	return Find[content.Project](ctx, c, EndpointProjects, Options{
		Populate: []string{"images"},
		Filters:  Filters{"featured": Eq(true)},
		Sort:     []string{"projectDate:desc"},
	})
}

// ---- certifications & testimonials ----

// Certifications lists certifications alphabetically.
func (c *Client) Certifications(ctx context.Context) (*content.CertificationsResponse, error) {
	return Find[content.Certification](ctx, c, EndpointCertifications, Options{
		Populate: []string{"logo"},
		Sort:     []string{"name:asc"},
	})
}

// Testimonials lists testimonials, optionally only featured ones.
func (c *Client) Testimonials(ctx context.Context, featured bool) (*content.TestimonialsResponse, error) {
	var filters Filters
	if featured {
		filters = Filters{"featured": Eq(true)}
	}
	return Find[content.Testimonial](ctx, c, EndpointTestimonials, Options{
		Populate: []string{"avatar"},
		Filters:  filters,
		Sort:     sortCreatedDesc,
	})
}

// ---- heroes ----

// Heroes lists heroes, newest first.
func (c *Client) Heroes(ctx context.Context, opts Options) (*content.HeroesResponse, error) {
	return Find[content.Hero](ctx, c, EndpointHeroes, opts.merge(Options{
		Populate: heroPopulate,
		Sort:     sortCreatedDesc,
	}))
}

// ActiveHero returns the newest active hero, or nil.
func (c *Client) ActiveHero(ctx context.Context) (*content.Entity[content.Hero], error) {
	return FindFirst[content.Hero](ctx, c, EndpointHeroes, Options{
		Filters:  activeOnly,
		Populate: heroPopulate,
		Sort:     sortCreatedDesc,
	})
}

// HeroBySlug looks up heroes by slug.
func (c *Client) HeroBySlug(ctx context.Context, slug string) (*content.HeroesResponse, error) {
	return Find[content.Hero](ctx, c, EndpointHeroes, Options{
		Populate: heroPopulate,
		Filters:  slugFilter(slug),
	})
}

// ActiveHeroes lists every active hero.
func (c *Client) ActiveHeroes(ctx context.Context) (*content.HeroesResponse, error) {
	return Find[content.Hero](ctx, c, EndpointHeroes, Options{
		Populate: heroPopulate,
		Filters:  activeOnly,
		Sort:     sortCreatedDesc,
	})
}

// ---- steps ----

// Steps lists steps in display order.
func (c *Client) Steps(ctx context.Context, opts Options) (*content.StepsResponse, error) {
	return Find[content.Step](ctx, c, EndpointSteps, opts.merge(Options{Sort: sortOrderAsc}))
}

// ActiveSteps calls the custom steps/active route.
func (c *Client) ActiveSteps(ctx context.Context) (*content.StepsResponse, error) {
	return Find[content.Step](ctx, c, EndpointSteps+"/active", Options{})
}

// StepBySlug looks up steps by slug.
func (c *Client) StepBySlug(ctx context.Context, slug string) (*content.StepsResponse, error) {
	return Find[content.Step](ctx, c, EndpointSteps, Options{Filters: slugFilter(slug)})
}

// StepsByBackgroundColor lists active steps of one color.
func (c *Client) StepsByBackgroundColor(ctx context.Context, color content.StepBackground) (*content.StepsResponse, error) {
	return Find[content.Step](ctx, c, EndpointSteps, Options{
		Filters: Filters{"backgroundColor": Eq(string(color)), "isActive": Eq(true)},
		Sort:    sortOrderAsc,
	})
}

// ---- section infos ----

// SectionInfos lists section infos, newest first.
func (c *Client) SectionInfos(ctx context.Context, opts Options) (*content.SectionInfosResponse, error) {
	return Find[content.SectionInfo](ctx, c, EndpointSectionInfos, opts.merge(Options{
		Sort:     sortCreatedDesc,
		Populate: []string{"image"},
	}))
}

// ActiveSectionInfos lists active section infos.
func (c *Client) ActiveSectionInfos(ctx context.Context) (*content.SectionInfosResponse, error) {
	return Find[content.SectionInfo](ctx, c, EndpointSectionInfos, Options{
		Filters:  activeOnly,
		Populate: []string{"image"},
		Sort:     sortCreatedDesc,
	})
}

// SectionInfoBySlug looks up active section infos by slug.
func (c *Client) SectionInfoBySlug(ctx context.Context, slug string) (*content.SectionInfosResponse, error) {
	return Find[content.SectionInfo](ctx, c, EndpointSectionInfos, Options{
		Filters:  activeSlugFilter(slug),
		Populate: []string{"image"},
	})
}

// ActiveSectionInfo returns the newest active section info, or nil.
func (c *Client) ActiveSectionInfo(ctx context.Context) (*content.Entity[content.SectionInfo], error) {
	return FindFirst[content.SectionInfo](ctx, c, EndpointSectionInfos, Options{
		Filters:  activeOnly,
		Populate: []string{"image"},
		Sort:     sortCreatedDesc,
	})
}

// SectionInfosByBackgroundColor lists active section infos of one color.
func (c *Client) SectionInfosByBackgroundColor(ctx context.Context, color content.SectionBackground) (*content.SectionInfosResponse, error) {
	return Find[content.SectionInfo](ctx, c, EndpointSectionInfos, Options{
		Filters:  Filters{"backgroundColor": Eq(string(color)), "isActive": Eq(true)},
		Populate: []string{"image"},
		Sort:     sortCreatedDesc,
	})
}

// ---- services ----

// Services lists services in display order with every relation populated.
func (c *Client) Services(ctx context.Context, opts Options) (*content.ServicesResponse, error) {
	return Find[content.Service](ctx, c, EndpointServices, opts.merge(Options{
		Sort:     sortOrderAsc,
		Populate: PopulateAll,
	}))
}

// ActiveServices lists active services.
func (c *Client) ActiveServices(ctx context.Context) (*content.ServicesResponse, error) {
	return Find[content.Service](ctx, c, EndpointServices, Options{
		Filters:  activeOnly,
		Sort:     sortOrderAsc,
		Populate: PopulateAll,
	})
}

// FeaturedServices lists active, featured services.
func (c *Client) FeaturedServices(ctx context.Context) (*content.ServicesResponse, error) {
	return Find[content.Service](ctx, c, EndpointServices, Options{
		Filters:  Filters{"isActive": Eq(true), "featured": Eq(true)},
		Sort:     sortOrderAsc,
		Populate: PopulateAll,
	})
}

// ServiceBySlug looks up active services by slug.
func (c *Client) ServiceBySlug(ctx context.Context, slug string) (*content.ServicesResponse, error) {
	return Find[content.Service](ctx, c, EndpointServices, Options{
		Filters:  activeSlugFilter(slug),
		Populate: PopulateAll,
	})
}

// ServicesByIconColor lists active services of one icon color.
func (c *Client) ServicesByIconColor(ctx context.Context, color content.IconColor) (*content.ServicesResponse, error) {
	return Find[content.Service](ctx, c, EndpointServices, Options{
		Filters:  Filters{"iconColor": Eq(string(color)), "isActive": Eq(true)},
		Sort:     sortOrderAsc,
		Populate: PopulateAll,
	})
}

// DefaultServicesLimit is the homepage service count.
const DefaultServicesLimit = 6

// ServicesLimited lists at most limit active services. limit <= 0 selects
// DefaultServicesLimit.
func (c *Client) ServicesLimited(ctx context.Context, limit int) (*content.ServicesResponse, error) {
	if limit <= 0 {
		limit = DefaultServicesLimit
	}
	return Find[content.Service](ctx, c, EndpointServices, Options{
		Filters:    activeOnly,
		Sort:       sortOrderAsc,
		Populate:   PopulateAll,
		Pagination: &PageRequest{PageSize: limit},
	})
}

// ---- service gallery ----

// GalleryServices lists services with their gallery image.
func (c *Client) GalleryServices(ctx context.Context, opts Options) (*content.ServicesResponse, error) {
	return Find[content.Service](ctx, c, EndpointServices, opts.merge(Options{Populate: []string{"image"}}))
}

// ActiveGalleryServices calls the custom services/active route.
func (c *Client) ActiveGalleryServices(ctx context.Context) (*content.ServicesResponse, error) {
	return Find[content.Service](ctx, c, EndpointServices+"/active", Options{})
}

// GalleryServiceByOrder calls the custom services/order/{n} route.
func (c *Client) GalleryServiceByOrder(ctx context.Context, order int) (*content.Response[*content.Entity[content.Service]], error) {
	return FindSingle[content.Service](ctx, c, EndpointServices+"/order/"+strconv.Itoa(order), Options{})
}

// GalleryServiceBySlug looks up gallery services by slug.
func (c *Client) GalleryServiceBySlug(ctx context.Context, slug string, opts Options) (*content.ServicesResponse, error) {
	return Find[content.Service](ctx, c, EndpointServices, opts.merge(Options{
		Filters:  slugFilter(slug),
		Populate: []string{"image"},
	}))
}

// ---- headers ----

// Headers lists headers with their logo file.
func (c *Client) Headers(ctx context.Context, opts Options) (*content.HeadersResponse, error) {
	return Find[content.Header](ctx, c, EndpointHeaders, opts.merge(Options{Populate: []string{"logoFile"}}))
}

// ActiveHeader returns the newest active header, or nil.
func (c *Client) ActiveHeader(ctx context.Context) (*content.Entity[content.Header], error) {
	return FindFirst[content.Header](ctx, c, EndpointHeaders, Options{
		Filters:  activeOnly,
		Populate: []string{"logoFile"},
		Sort:     sortCreatedDesc,
	})
}

// HeaderBySlug looks up active headers by slug.
func (c *Client) HeaderBySlug(ctx context.Context, slug string) (*content.HeadersResponse, error) {
	return Find[content.Header](ctx, c, EndpointHeaders, Options{
		Filters:  activeSlugFilter(slug),
		Populate: []string{"logoFile"},
	})
}

// ActiveHeaders lists every active header.
func (c *Client) ActiveHeaders(ctx context.Context) (*content.HeadersResponse, error) {
	return Find[content.Header](ctx, c, EndpointHeaders, Options{
		Filters:  activeOnly,
		Populate: []string{"logoFile"},
		Sort:     sortCreatedDesc,
	})
}

// ---- title section infos ----

// TitleSectionInfos lists title sections, newest first.
func (c *Client) TitleSectionInfos(ctx context.Context, opts Options) (*content.TitleSectionInfosResponse, error) {
	return Find[content.TitleSectionInfo](ctx, c, EndpointTitleSectionInfos, opts.merge(Options{
		Populate: titlePopulate,
		Sort:     sortCreatedDesc,
	}))
}

// TitleSectionInfoByIdentifier returns the first title section with the
// identifier, or nil.
func (c *Client) TitleSectionInfoByIdentifier(ctx context.Context, identifier string) (*content.Entity[content.TitleSectionInfo], error) {
	return FindFirst[content.TitleSectionInfo](ctx, c, EndpointTitleSectionInfos, Options{
		Filters:  Filters{"identifier": Eq(identifier)},
		Populate: titlePopulate,
	})
}

// TitleSectionInfoBySlug looks up title sections by slug.
func (c *Client) TitleSectionInfoBySlug(ctx context.Context, slug string) (*content.TitleSectionInfosResponse, error) {
	return Find[content.TitleSectionInfo](ctx, c, EndpointTitleSectionInfos, Options{
		Filters:  slugFilter(slug),
		Populate: titlePopulate,
	})
}

// ---- project showcases ----

// ProjectShowcases lists showcases, newest first.
func (c *Client) ProjectShowcases(ctx context.Context, opts Options) (*content.ProjectShowcasesResponse, error) {
	return Find[content.ProjectShowcase](ctx, c, EndpointProjectShowcases, opts.merge(Options{
		Populate: showcasePopulate,
		Sort:     sortCreatedDesc,
	}))
}

// ProjectShowcaseByIdentifier returns the first showcase with the
// identifier, or nil.
func (c *Client) ProjectShowcaseByIdentifier(ctx context.Context, identifier string) (*content.Entity[content.ProjectShowcase], error) {
	return FindFirst[content.ProjectShowcase](ctx, c, EndpointProjectShowcases, Options{
		Filters:  Filters{"identifier": Eq(identifier)},
		Populate: showcasePopulate,
	})
}

// ProjectShowcaseBySlug looks up showcases by slug.
func (c *Client) ProjectShowcaseBySlug(ctx context.Context, slug string) (*content.ProjectShowcasesResponse, error) {
	return Find[content.ProjectShowcase](ctx, c, EndpointProjectShowcases, Options{
		Filters:  slugFilter(slug),
		Populate: showcasePopulate,
	})
}

// ---- project cards ----

// ProjectCards lists project cards by year, newest first.
func (c *Client) ProjectCards(ctx context.Context, opts Options) (*content.ProjectCardsResponse, error) {
	return Find[content.ProjectCard](ctx, c, EndpointProjectCards, opts.merge(Options{
		Populate: cardPopulate,
		Sort:     cardSort,
	}))
}

// DefaultProjectCardsLimit is the page size used by ProjectCardsFiltered.
const DefaultProjectCardsLimit = 50

// ProjectCardFilter narrows ProjectCardsFiltered. Empty lists are ignored.
type ProjectCardFilter struct {
	Categories []string
	Statuses   []string
	Years      []string
	Limit      int
}

// ProjectCardsFiltered lists project cards matching any of the given
// categories, statuses and years.
func (c *Client) ProjectCardsFiltered(ctx context.Context, f ProjectCardFilter) (*content.ProjectCardsResponse, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultProjectCardsLimit
	}

	filters := Filters{}
	if len(f.Categories) > 0 {
		filters["category"] = In(f.Categories...)
	}
	if len(f.Statuses) > 0 {
		filters["status"] = In(f.Statuses...)
	}
	if len(f.Years) > 0 {
		filters["year"] = In(f.Years...)
	}

	return Find[content.ProjectCard](ctx, c, EndpointProjectCards, Options{
		Filters:    filters,
		Populate:   cardPopulate,
		Pagination: &PageRequest{PageSize: limit},
		Sort:       cardSort,
	})
}

// ProjectCardsByCategory lists project cards of one category.
func (c *Client) ProjectCardsByCategory(ctx context.Context, category string) (*content.ProjectCardsResponse, error) {
	return Find[content.ProjectCard](ctx, c, EndpointProjectCards, Options{
		Filters:  Filters{"category": Eq(category)},
		Populate: cardPopulate,
		Sort:     sortCreatedDesc,
	})
}

// ProjectCardsByStatus lists project cards of one status.
func (c *Client) ProjectCardsByStatus(ctx context.Context, status string) (*content.ProjectCardsResponse, error) {
	return Find[content.ProjectCard](ctx, c, EndpointProjectCards, Options{
		Filters:  Filters{"status": Eq(status)},
		Populate: cardPopulate,
		Sort:     sortCreatedDesc,
	})
}

// ProjectCardBySlug looks up project cards by slug.
func (c *Client) ProjectCardBySlug(ctx context.Context, slug string) (*content.ProjectCardsResponse, error) {
	return Find[content.ProjectCard](ctx, c, EndpointProjectCards, Options{
		Filters:  slugFilter(slug),
		Populate: cardPopulate,
	})
}
