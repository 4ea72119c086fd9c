package main

type Links struct {
	GitHub   string
	LinkedIn string
	Resume   string
}

type ProfileRecord struct {
	Name    string
	Role    string
	Tagline string
	Summary string
	Email   string
	Links   Links
}

type SkillRecord struct {
	Icon  string
	Label string
}

type Action struct {
	Label string
	Href  string
	Icon  string
}

type ProjectRecord struct {
	Title   string
	Blurb   string
	Badges  []string
	Actions []Action
}

// Highlight is one icon-and-sentence line in the hero card or contact tips.
type Highlight struct {
	Icon string
	Text string
}

var Profile = ProfileRecord{
	Name:    "Alain Julien",
	Role:    "Business Intelligence Engineer & Systems Analyst",
	Tagline: "I turn messy public-sector data into trusted pipelines and dashboards that drive decisions—fast.",
	Summary: `Experienced BI Engineer and Systems Analyst with 4+ years in Trinidad & Tobago's public sector.
	I build clean data pipelines and deliver insight-rich analytics across Oracle Fusion HCM rollouts (~40 entities).
	Strengths: SQL (Athena/BigQuery/Postgres), Python ETL, AWS (S3, Glue, Athena, Redshift), and Power BI/Tableau/QuickSight.`,
	Email: "alain_j@live.com",
	Links: Links{
		GitHub:   "https://github.com/AlainJulien",
		LinkedIn: "https://www.linkedin.com/in/alain-julien",
		Resume:   "#",
	},
}

var Skills = []SkillRecord{
	{Icon: "database", Label: "SQL (Athena, BigQuery, Postgres)"},
	{Icon: "cloud", Label: "AWS (S3, Glue, Athena, Redshift)"},
	{Icon: "spreadsheet", Label: "Power BI, Tableau, QuickSight"},
	{Icon: "chart", Label: "Data Modeling & ETL (Python)"},
	{Icon: "gauge", Label: "UAT/SIT · Test Strategy"},
	{Icon: "globe", Label: "Public Sector · Oracle Fusion HCM"},
}

var Projects = []ProjectRecord{
	{
		Title:  "San Francisco Traffic Safety — End‑to‑End AWS Pipeline",
		Blurb:  "S3 → Glue → Athena SQL cleaning → Power BI dashboard. Crash trends, high‑risk corridors, time‑of‑day heatmaps.",
		Badges: []string{"AWS", "ETL", "Athena SQL", "Power BI"},
		Actions: []Action{
			{Label: "GitHub", Href: "https://github.com/AlainJulien", Icon: "github"},
			{Label: "Dashboard", Href: "#", Icon: "external"},
		},
	},
	{
		Title:  "USD↔TTD FX Tracker — BI for Cost‑of‑Living Moves",
		Blurb:  "Pipeline + dashboard tracking FX trends, forecasting, and impact on relocation budgets.",
		Badges: []string{"Forecasting", "Power BI", "Python"},
		Actions: []Action{
			{Label: "GitHub", Href: "https://github.com/AlainJulien", Icon: "github"},
			{Label: "Live", Href: "#", Icon: "external"},
		},
	},
	{
		Title:  "Oracle Fusion HCM Rollout Analytics — 40 MDAs",
		Blurb:  "KPIs for SIT/UAT coverage, defect burn‑down, go‑live readiness across entities and integrations.",
		Badges: []string{"Oracle HCM", "SIT/UAT", "Dashboards"},
		Actions: []Action{
			{Label: "Case Notes", Href: "#", Icon: "external"},
		},
	},
}

var WhatIDo = []Highlight{
	{Icon: "database", Text: "Design clean data models and write production‑ready SQL for analytics."},
	{Icon: "cloud", Text: "Ship AWS pipelines (S3 → Glue → Athena/Redshift) with governance in mind."},
	{Icon: "chart", Text: "Build decision‑ready dashboards (Power BI/Tableau/QuickSight) your execs will use."},
	{Icon: "map", Text: "Specialty: Public‑sector analytics and Oracle Fusion HCM rollouts across ~40 entities."},
}

var ContactPitch = `I’m open to BI Engineer, Analytics, or Data roles. Remote or hybrid.
	Public‑sector and regulated environments welcome.`

var ContactTips = []Highlight{
	{Icon: "sparkles", Text: "Consistent tagline across site, resume, LinkedIn."},
	{Icon: "chart", Text: "Lead with outcomes (before → after metrics)."},
	{Icon: "cloud", Text: "Call out AWS stack in every project card."},
	{Icon: "external", Text: "Add links to code, data, and dashboards."},
}
