package strapi

import (
	"testing"
)

func TestOptions_Encode(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "empty",
			opts: Options{},
			want: "",
		},
		{
			name: "slug filter with sort",
			opts: Options{
				Filters: Filters{"slug": Eq("x")},
				Sort:    []string{"order:asc"},
			},
			want: "filters[slug][$eq]=x&sort[0]=order%3Aasc",
		},
		{
			name: "populate all",
			opts: Options{Populate: PopulateAll},
			want: "populate=%2A",
		},
		{
			name: "populate list",
			opts: Options{Populate: []string{"backgroundVideo", "backgroundImage"}},
			want: "populate[0]=backgroundVideo&populate[1]=backgroundImage",
		},
		{
			name: "populate map",
			opts: Options{Populate: map[string]any{"image": true, "floatingElement1": true}},
			want: "populate[floatingElement1]=true&populate[image]=true",
		},
		{
			name: "multiple filters sorted by field",
			opts: Options{
				Filters: Filters{
					"isActive":        Eq(true),
					"backgroundColor": Eq("blue"),
				},
			},
			want: "filters[backgroundColor][$eq]=blue&filters[isActive][$eq]=true",
		},
		{
			name: "in operator keeps list order",
			opts: Options{
				Filters: Filters{"category": In("mantenimiento", "consultoria")},
			},
			want: "filters[category][$in][0]=mantenimiento&filters[category][$in][1]=consultoria",
		},
		{
			name: "multiple sort keys keep order",
			opts: Options{Sort: []string{"year:desc", "createdAt:desc"}},
			want: "sort[0]=year%3Adesc&sort[1]=createdAt%3Adesc",
		},
		{
			name: "pagination",
			opts: Options{Pagination: &PageRequest{Page: 2, PageSize: 6}},
			want: "pagination[page]=2&pagination[pageSize]=6",
		},
		{
			name: "values escaped keys literal",
			opts: Options{Filters: Filters{"title": Eq("a&b c/ñ")}},
			want: "filters[title][$eq]=a%26b%20c%2F%C3%B1",
		},
		{
			name: "or over filter list",
			opts: Options{
				Filters: Filters{"$or": []Filters{{"slug": Eq("a")}, {"slug": Eq("b")}}},
			},
			want: "filters[$or][0][slug][$eq]=a&filters[$or][1][slug][$eq]=b",
		},
		{
			name: "and over plain maps",
			opts: Options{
				Filters: Filters{"$and": []map[string]any{
					{"isActive": Eq(true)},
					{"order": map[string]int{"$lt": 3}},
				}},
			},
			want: "filters[$and][0][isActive][$eq]=true&filters[$and][1][order][$lt]=3",
		},
		{
			name: "in operator with int64 list",
			opts: Options{Filters: Filters{"id": Filters{"$in": []int64{1, 2}}}},
			want: "filters[id][$in][0]=1&filters[id][$in][1]=2",
		},
		{
			name: "populate string map",
			opts: Options{Populate: map[string]string{"image": "true"}},
			want: "populate[image]=true",
		},
		{
			name: "nested populate with array fields",
			opts: Options{Populate: map[string]any{
				"category": map[string][2]string{"fields": {"name", "slug"}},
			}},
			want: "populate[category][fields][0]=name&populate[category][fields][1]=slug",
		},
		{
			name: "nil pointer value dropped",
			opts: Options{Filters: Filters{"slug": Eq((*string)(nil)), "order": Eq(2)}},
			want: "filters[order][$eq]=2",
		},
		{
			name: "all sections",
			opts: Options{
				Populate:   []string{"image"},
				Filters:    Filters{"isActive": Eq(true)},
				Sort:       []string{"order:asc"},
				Pagination: &PageRequest{PageSize: 6},
			},
			want: "populate[0]=image&filters[isActive][$eq]=true&sort[0]=order%3Aasc&pagination[pageSize]=6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptions_Merge(t *testing.T) {
	defaults := Options{
		Populate: []string{"images"},
		Sort:     []string{"projectDate:desc"},
	}

	t.Run("caller overrides sort only", func(t *testing.T) {
		got := Options{Sort: []string{"title:asc"}}.merge(defaults)
		if got.Encode() != "populate[0]=images&sort[0]=title%3Aasc" {
			t.Errorf("merge() encoded = %q", got.Encode())
		}
	})

	t.Run("zero options keep defaults", func(t *testing.T) {
		got := Options{}.merge(defaults)
		if got.Encode() != "populate[0]=images&sort[0]=projectDate%3Adesc" {
			t.Errorf("merge() encoded = %q", got.Encode())
		}
	})

	t.Run("caller adds pagination", func(t *testing.T) {
		got := Options{Pagination: &PageRequest{Page: 3}}.merge(defaults)
		if got.Pagination == nil || got.Pagination.Page != 3 {
			t.Errorf("merge() pagination = %+v", got.Pagination)
		}
	})
}
