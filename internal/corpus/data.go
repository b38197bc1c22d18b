package corpus

// Default returns the portfolio fact corpus. Content mirrors the public
// portfolio site; update both together.
func Default() *Corpus {
	return &Corpus{
		Profile: Profile{
			Name:     "Malcolm Joaquin L. Cuady",
			Initials: "MC",
			URL:      "https://malcolmcuady.dev",
			Location: "Manila, PH",
			Description: "Full-Stack Developer & Automation Engineer specializing in building scalable " +
				"web systems and workflow automation. Founder of Optrizo.",
			Summary: "I'm a BS Information Technology graduate from De La Salle University (December 2025). " +
				"As the founder of Optrizo, I build automation-first solutions for SMEs, including CRMs, " +
				"queueing systems, and dashboards. I specialize in full-stack development, API integrations, " +
				"and workflow optimization using modern web technologies. I've reduced manual work by 80% " +
				"and improved operational efficiency for multiple businesses through smart automation and " +
				"system design.",
		},
		CoreSkills: []string{
			"Leadership", "Analytical Thinking", "Problem-Solving", "Communication",
			"Collaboration", "Design Thinking", "Adaptability", "Innovation",
			"Versatility", "Critical Thinking", "Time Management", "Attention to Detail",
			"Continuous Learning", "Team Building",
		},
		Skills: []SkillCategory{
			{
				Category: "Languages & Frameworks",
				Skills:   []string{"JavaScript", "TypeScript", "Python", "PHP", "C#", "Java", "Dart"},
			},
			{
				Category: "Frontend Development",
				Skills:   []string{"React.js", "Next.js", "Vue.js", "Tailwind CSS", "Bootstrap", "FlutterFlow"},
			},
			{
				Category: "Backend Development",
				Skills:   []string{"Node.js", "Express.js", "ASP.NET Core", "Spring Boot", "REST APIs", "GraphQL"},
			},
			{
				Category: "Databases & Cloud",
				Skills:   []string{"Supabase", "Firebase", "SQL/NoSQL", "AWS", "Vercel", "Netlify"},
			},
			{
				Category: "Automation & Integrations",
				Skills:   []string{"Airtable", "Make.com", "Zapier", "Klaviyo", "Twilio", "PayMongo", "Stripe"},
			},
			{
				Category: "AI/ML & Data",
				Skills:   []string{"TensorFlow", "Tesseract OCR", "NLP", "Power BI", "Statistical Analysis"},
			},
			{
				Category: "DevOps & Tools",
				Skills:   []string{"Git/GitHub", "Docker", "Kubernetes", "GitHub Actions", "WordPress/Elementor"},
			},
		},
		Work: []Work{
			{
				Company:  "Optrizo Digital Solutions",
				URL:      "https://optrizo.com",
				Title:    "Founder / Full-Stack Developer",
				Badges:   []string{"Founder"},
				Location: "Remote",
				Start:    "2024",
				End:      "Present",
				Description: "Co-founded student-led startup with I.T. and marketing students providing digital " +
					"solutions to SMEs. Developed live queueing system using React, Supabase (AWS), Twilio API " +
					"with real-time updates. Integrated Pancake CRM, Busybee SMS API, Make.com automations for " +
					"client workflows. Led full-stack architecture, API design, and analytics automation for " +
					"multiple client projects.",
			},
			{
				Company:  "Rent Then Drive",
				URL:      "https://rentthendrivecar.com",
				Title:    "Project Lead / Full-Stack Developer",
				Badges:   []string{"Capstone Project"},
				Location: "Remote",
				Start:    "2024",
				End:      "2025",
				Description: "Led capstone team building cloud-based car rental platform using FlutterFlow, " +
					"Firebase, Airtable. Integrated PayMongo API, Google Maps API, TensorFlow + Tesseract OCR " +
					"for AI fraud detection. Implemented Make.com automations and Power BI analytics dashboards.",
			},
			{
				Company:  "Sole Surgeon",
				URL:      "https://solesurgeon.com",
				Title:    "CRM & Automation Developer",
				Location: "Remote",
				Start:    "2025",
				End:      "2025",
				Description: "Built Airtable CRM integrated with Pancake CRM for client management workflows. " +
					"Automated SMS tagging and notifications, improving operational efficiency.",
			},
			{
				Company:  "Hakum Auto Care",
				URL:      "hakumautocare.com",
				Title:    "Full-Stack Developer",
				Location: "On-site",
				Start:    "2024",
				End:      "2024",
				Description: "Developed React + TypeScript queueing system with Supabase and Twilio API. " +
					"Automated real-time service tracking and reporting workflows.",
			},
			{
				Company:     "Converge ICT Solutions Inc.",
				URL:         "https://convergeict.com",
				Title:       "IT Intern",
				Badges:      []string{"Internship"},
				Location:    "On-site",
				Start:       "Sept 2025",
				End:         "Dec 2025",
				Description: "Supported Global Network Operations through ticketing, fault isolation, and documentation.",
			},
			{
				Company:     "Startek Pasig",
				URL:         "https://startek.com",
				Title:       "Data Analyst Intern",
				Badges:      []string{"Internship"},
				Location:    "Hybrid",
				Start:       "June 2023",
				End:         "Nov 2023",
				Description: "Created Power BI dashboards using SQL and statistical analysis (ANOVA).",
			},
		},
		Education: []Education{
			{
				School: "De La Salle University",
				Degree: "Bachelor of Science in Information Technology",
				Start:  "2021",
				End:    "2025",
				Achievements: []string{
					"1st Honors Dean's List (2024-2025)",
					"2nd Honors Dean's List (2023-2024)",
					"Co-Founder - Data Science Society",
				},
				Electives: []string{
					"Advanced Web Development", "Systems Integration", "Mobile App Development",
					"Data Mining & AI Principles", "Applied Data Analytics", "Secure SDLC",
					"Design Thinking", "Systems Planning", "System Continuity & Disaster Recovery",
				},
			},
		},
		Certifications: []Certification{
			{Title: "Airtable Admin Certification", Dates: "2024", Description: "Issued by Airtable"},
			{Title: "AWS Academy Cloud Foundations", Dates: "2024", Description: "Issued by AWS Academy"},
			{Title: "Klaviyo Developer Certificate", Dates: "2024", Description: "Issued by Klaviyo"},
			{Title: "HubSpot SEO & Marketing Hub", Dates: "2024", Description: "Issued by HubSpot Academy"},
			{Title: "Lean Six Sigma White Belt", Dates: "2024", Description: "Issued by Six Sigma"},
			{Title: "Databricks Generative AI Essentials", Dates: "2024", Description: "Issued by Databricks"},
			{Title: "Asana Workflow Specialist", Dates: "2024", Description: "Issued by Asana"},
			{Title: "CCNA Enterprise Networking", Dates: "2024", Description: "Issued by Cisco"},
		},
		Projects: []Project{
			{
				Title: "Hakum Auto Care - Queueing System",
				Dates: "2024",
				URL:   "hakumautocare.com",
				Description: "Real-time queueing management system with SMS notifications for auto care services. " +
					"Built with React, TypeScript, Supabase, and Twilio to streamline customer flow and improve " +
					"operational efficiency.",
				Technologies: []string{"React", "TypeScript", "Supabase", "Twilio"},
			},
			{
				Title: "Meridian Capital - Investment Platform",
				Dates: "2024",
				URL:   "https://meridian-capital-zeta.vercel.app/",
				Description: "Modern investment platform showcasing financial services and investment opportunities. " +
					"Built with Next.js and deployed on Vercel for optimal performance.",
				Technologies: []string{"Next.js", "React", "Tailwind CSS", "Vercel"},
			},
			{
				Title: "InvestPH - Investment Dashboard",
				Dates: "2024",
				URL:   "https://invest-ph-1.vercel.app/",
				Description: "Investment tracking and portfolio management dashboard for Philippine market. " +
					"Features real-time data visualization and investment analytics.",
				Technologies: []string{"Next.js", "React", "TypeScript", "Vercel"},
			},
			{
				Title: "Rent Then Drive App",
				Dates: "2025",
				Description: "Mobile-first application built with FlutterFlow for rapid deployment and " +
					"cross-platform compatibility. Features modern UI/UX and responsive design.",
				Technologies: []string{"FlutterFlow", "Dart", "Firebase"},
			},
			{
				Title: "Sole Surgeon - CRM & Automation",
				Dates: "2024",
				URL:   "https://solesurgeon.com",
				Description: "Comprehensive Airtable + Pancake CRM system with automated tagging, SMS flows, and " +
					"customer tracking. Reduced manual work by 80% and improved response time by 40%.",
				Technologies: []string{"Airtable", "Make.com", "Twilio", "Pancake"},
			},
			{
				Title: "Billing Automation Workflows",
				Dates: "2023-2024",
				Description: "Automated billing systems for multiple clients. Integrated payment gateways, " +
					"invoice generation, and subscription management using modern APIs.",
				Technologies: []string{"Stripe", "PayMongo", "Make.com", "Airtable"},
			},
		},
		Hackathons: []Hackathon{
			{
				Title:    "DLSU Hackathon 2024",
				Dates:    "October 2024",
				Location: "Manila, PH",
				Description: "Developed an innovative automation solution for business process optimization " +
					"during the DLSU IT department hackathon. Focused on creating efficient workflows using " +
					"modern web technologies.",
			},
		},
		Contact: Contact{
			Email: "malcolm.cuady@dlsu.edu.ph",
			Social: map[string]string{
				"GitHub":   "https://github.com/jcuady",
				"LinkedIn": "https://www.linkedin.com/in/malcolm-joaquin-cuady-7566bb262/",
			},
		},
	}
}
