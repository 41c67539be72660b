package content

// Response types per collection.
type (
	ArticlesResponse          = Response[[]Entity[Article]]
	CompanyResponse           = Response[*Entity[Company]]
	ProjectsResponse          = Response[[]Entity[Project]]
	CertificationsResponse    = Response[[]Entity[Certification]]
	TestimonialsResponse      = Response[[]Entity[Testimonial]]
	HeroesResponse            = Response[[]Entity[Hero]]
	StepsResponse             = Response[[]Entity[Step]]
	SectionInfosResponse      = Response[[]Entity[SectionInfo]]
	ServicesResponse          = Response[[]Entity[Service]]
	HeadersResponse           = Response[[]Entity[Header]]
	TitleSectionInfosResponse = Response[[]Entity[TitleSectionInfo]]
	ProjectShowcasesResponse  = Response[[]Entity[ProjectShowcase]]
	ProjectCardsResponse      = Response[[]Entity[ProjectCard]]
)
