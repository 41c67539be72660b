package content

import "encoding/json"

// Article is a blog/news entry.
type Article struct {
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Cover       *Media          `json:"cover,omitempty"`
	Author      string          `json:"author"`
	Category    string          `json:"category"`
	Blocks      json.RawMessage `json:"blocks,omitempty"`
}

// Company is the single-type company profile.
type Company struct {
	Name          string `json:"name"`
	Slogan        string `json:"slogan"`
	Mission       string `json:"mission"`
	Vision        string `json:"vision"`
	FoundedYear   int    `json:"foundedYear"`
	EmployeeCount int    `json:"employeeCount"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Logo          *Media `json:"logo,omitempty"`
}

// ProjectCategory classifies a Project.
type ProjectCategory string

const (
	ProjectCategoryConstruction   ProjectCategory = "construccion"
	ProjectCategoryInfrastructure ProjectCategory = "infraestructura"
	ProjectCategoryMaintenance    ProjectCategory = "mantenimiento"
	ProjectCategoryConsulting     ProjectCategory = "consultoria"
)

// ProjectStatus is the delivery state of a Project.
type ProjectStatus string

const (
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusPlanned    ProjectStatus = "planned"
)

// Project is a portfolio project.
type Project struct {
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Client      string          `json:"client"`
	ProjectDate string          `json:"projectDate"`
	Duration    string          `json:"duration"`
	Featured    bool            `json:"featured"`
	Category    ProjectCategory `json:"category"`
	Status      ProjectStatus   `json:"status"`
	Images      []Media         `json:"images,omitempty"`
}

// Certification is a company certification or accreditation.
type Certification struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	ValidUntil          string `json:"validUntil"`
	CertificationNumber string `json:"certificationNumber"`
	Logo                *Media `json:"logo,omitempty"`
}

// Testimonial is a client quote.
type Testimonial struct {
	ClientName     string `json:"clientName"`
	ClientPosition string `json:"clientPosition"`
	Company        string `json:"company"`
	Testimonial    string `json:"testimonial"`
	Rating         int    `json:"rating"`
	Featured       bool   `json:"featured"`
	Avatar         *Media `json:"avatar,omitempty"`
}

// Rating is the star rating component used by heroes.
type Rating struct {
	Stars float64 `json:"stars"`
	Count string  `json:"count"`
}

// HeroBackground is the palette for Hero banners.
type HeroBackground string

const (
	HeroBackgroundBlue    HeroBackground = "blue"
	HeroBackgroundPrimary HeroBackground = "primary"
	HeroBackgroundAccent  HeroBackground = "accent"
)

// Hero is a landing banner. At most one is expected to be active.
type Hero struct {
	Title           string         `json:"title"`
	Subtitle        string         `json:"subtitle"`
	ButtonText      string         `json:"buttonText"`
	ButtonLink      string         `json:"buttonLink,omitempty"`
	BackgroundColor HeroBackground `json:"backgroundColor,omitempty"`
	HeroImage       *Media         `json:"heroImage,omitempty"`
	BackgroundImage *Media         `json:"backgroundImage,omitempty"`
	BackgroundVideo *Media         `json:"backgroundVideo,omitempty"`
	Rating          *Rating        `json:"rating,omitempty"`
	Slug            string         `json:"slug,omitempty"`
	IsActive        bool           `json:"isActive"`
}

// StepBackground is the palette for Step cards.
type StepBackground string

const (
	StepBackgroundYellow StepBackground = "yellow"
	StepBackgroundBlue   StepBackground = "blue"
	StepBackgroundGreen  StepBackground = "green"
	StepBackgroundPurple StepBackground = "purple"
	StepBackgroundOrange StepBackground = "orange"
)

// Step is one item of the "how we work" sequence.
type Step struct {
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	SVGIcon         string         `json:"svgIcon"`
	Order           int            `json:"order"`
	IsActive        bool           `json:"isActive"`
	Slug            string         `json:"slug,omitempty"`
	BackgroundColor StepBackground `json:"backgroundColor,omitempty"`
}

// SectionBackground is the palette for SectionInfo blocks.
type SectionBackground string

const (
	SectionBackgroundWhite   SectionBackground = "white"
	SectionBackgroundGray    SectionBackground = "gray"
	SectionBackgroundBlue    SectionBackground = "blue"
	SectionBackgroundPrimary SectionBackground = "primary"
)

// SectionInfo is a promotional content block.
type SectionInfo struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	ButtonText      string            `json:"buttonText,omitempty"`
	ButtonLink      string            `json:"buttonLink,omitempty"`
	Image           *Media            `json:"image,omitempty"`
	Strength1       string            `json:"strength1,omitempty"`
	Strength2       string            `json:"strength2,omitempty"`
	Strength3       string            `json:"strength3,omitempty"`
	BackgroundColor SectionBackground `json:"backgroundColor"`
	Slug            string            `json:"slug,omitempty"`
	IsActive        bool              `json:"isActive"`
}

// IconColor is the palette for Service icons.
type IconColor string

const (
	IconColorBlue   IconColor = "blue"
	IconColorGreen  IconColor = "green"
	IconColorYellow IconColor = "yellow"
	IconColorPurple IconColor = "purple"
	IconColorOrange IconColor = "orange"
	IconColorRed    IconColor = "red"
)

// Service is an offered service, also used by the visual gallery.
type Service struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SVGIcon     string    `json:"svgIcon,omitempty"`
	IconColor   IconColor `json:"iconColor"`
	Order       int       `json:"order"`
	Slug        string    `json:"slug,omitempty"`
	IsActive    bool      `json:"isActive"`
	Featured    bool      `json:"featured"`
	Image       *Media    `json:"image,omitempty"`
}

// HeaderBackground is the palette for the site Header.
type HeaderBackground string

const (
	HeaderBackgroundBlue        HeaderBackground = "blue"
	HeaderBackgroundPrimary     HeaderBackground = "primary"
	HeaderBackgroundWhite       HeaderBackground = "white"
	HeaderBackgroundTransparent HeaderBackground = "transparent"
)

// Header is the main navigation bar configuration.
type Header struct {
	CompanyName     string           `json:"companyName"`
	Subtitle        string           `json:"subtitle,omitempty"`
	PhoneNumber     string           `json:"phoneNumber,omitempty"`
	ButtonText      string           `json:"buttonText"`
	ButtonLink      string           `json:"buttonLink,omitempty"`
	BackgroundColor HeaderBackground `json:"backgroundColor"`
	LogoSrc         string           `json:"logoSrc,omitempty"`
	LogoFile        *Media           `json:"logoFile,omitempty"`
	LogoAlt         string           `json:"logoAlt,omitempty"`
	Slug            string           `json:"slug,omitempty"`
	IsActive        bool             `json:"isActive"`
}

// TitleSectionInfo is a page title block with decorative floating images.
type TitleSectionInfo struct {
	Title            string `json:"title"`
	Subtitle         string `json:"subtitle,omitempty"`
	Description      string `json:"description,omitempty"`
	Identifier       string `json:"identifier"`
	Slug             string `json:"slug,omitempty"`
	Image            *Media `json:"image,omitempty"`
	FloatingElement1 *Media `json:"floatingElement1,omitempty"`
	FloatingElement2 *Media `json:"floatingElement2,omitempty"`
}

// ShowcaseStat is a label/value pair displayed on a ProjectShowcase.
type ShowcaseStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ShowcaseHighlight is a bullet point on a ProjectShowcase.
type ShowcaseHighlight struct {
	Text string `json:"text"`
}

// ProjectShowcase is a long-form project presentation.
type ProjectShowcase struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Identifier  string              `json:"identifier"`
	Slug        string              `json:"slug,omitempty"`
	HeroImage   *Media              `json:"heroImage,omitempty"`
	Stats       []ShowcaseStat      `json:"stats,omitempty"`
	Highlights  []ShowcaseHighlight `json:"highlights,omitempty"`
}

// Tag labels a ProjectCard.
type Tag struct {
	Name string `json:"name"`
}

// ProjectCard is the compact project tile used by filterable listings.
type ProjectCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Year        string `json:"year"`
	Slug        string `json:"slug,omitempty"`
	Image       *Media `json:"image,omitempty"`
	Tags        []Tag  `json:"tags,omitempty"`
}
