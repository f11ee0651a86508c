package models

type GrowthRates struct {
	ProjectsGrowth float64 `json:"projectsGrowth"`
	PostsGrowth    float64 `json:"postsGrowth"`
	ViewsGrowth    float64 `json:"viewsGrowth"`
}

type RecentActivity struct {
	ProjectsAdded     int `json:"projectsAdded"`
	PostsPublished    int `json:"postsPublished"`
	SkillsAdded       int `json:"skillsAdded"`
	CertificatesAdded int `json:"certificatesAdded"`
}

type DashboardStats struct {
	TotalViews        int            `json:"totalViews"`
	TotalProjects     int            `json:"totalProjects"`
	TotalPosts        int            `json:"totalPosts"`
	TotalSkills       int            `json:"totalSkills"`
	TotalCertificates int            `json:"totalCertificates"`
	GrowthRates       GrowthRates    `json:"growthRates"`
	RecentActivity    RecentActivity `json:"recentActivity"`
}

type WeeklyViews struct {
	Week  string `json:"week"`
	Views int    `json:"views"`
}

type ProjectsTimeline struct {
	Month     string `json:"month"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}
