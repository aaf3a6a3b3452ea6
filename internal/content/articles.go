package content

// Default is the registry of help articles shipped with the portal.
var Default = NewRegistry(defaultArticles)

var defaultArticles = []Article{
	{
		Slug:            "getting-started-with-the-portal",
		Title:           "Getting Started with the Resident Portal",
		Description:     "Create your account, link it to your residence and find your way around the portal.",
		Category:        "account",
		Tags:            []string{"onboarding", "account", "login"},
		ReadTimeMinutes: 4,
	},
	{
		Slug:            "linking-your-residence",
		Title:           "Linking Your Account to Your Residence",
		Description:     "How your portal account is matched to your resident record by email, and what to do when the match fails.",
		Category:        "account",
		Tags:            []string{"account", "email", "troubleshooting"},
		ReadTimeMinutes: 3,
	},
	{
		Slug:            "lease-agreement-management",
		Title:           "Lease Agreement Management",
		Description:     "Reviewing, renewing and terminating lease agreements for your unit.",
		Category:        "documents",
		Tags:            []string{"leases", "agreements"},
		ReadTimeMinutes: 6,
	},
	{
		Slug:            "understanding-service-charges",
		Title:           "Understanding Your Service Charges",
		Description:     "What the monthly service charge covers, how it is split between units and when it is due.",
		Category:        "finance",
		Tags:            []string{"charges", "payments", "budget"},
		ReadTimeMinutes: 5,
	},
	{
		Slug:            "paying-charges-online",
		Title:           "Paying Charges Online",
		Description:     "Supported payment methods, receipts and what happens when a payment is late.",
		Category:        "finance",
		Tags:            []string{"payments", "receipts"},
		ReadTimeMinutes: 4,
	},
	{
		Slug:            "reporting-a-maintenance-issue",
		Title:           "Reporting a Maintenance Issue",
		Description:     "Raise a maintenance request for your unit or a common area and track its progress.",
		Category:        "maintenance",
		Tags:            []string{"requests", "repairs", "common-areas"},
		ReadTimeMinutes: 3,
	},
	{
		Slug:            "general-assembly-voting",
		Title:           "General Assembly and Voting",
		Description:     "How syndicate general assemblies work, proxy voting and where to find the minutes.",
		Category:        "governance",
		Tags:            []string{"assembly", "voting", "minutes"},
		ReadTimeMinutes: 7,
	},
	{
		Slug:            "updating-contact-details",
		Title:           "Updating Your Contact Details",
		Description:     "Keep your email and phone number current so notices reach you.",
		Category:        "account",
		Tags:            []string{"account", "email", "phone"},
		ReadTimeMinutes: 2,
	},
	{
		Slug:            "building-rules-and-quiet-hours",
		Title:           "Building Rules and Quiet Hours",
		Description:     "House rules, quiet hours and how rule changes are adopted by the assembly.",
		Category:        "governance",
		Tags:            []string{"rules", "neighbours"},
		ReadTimeMinutes: 4,
	},
	{
		Slug:            "annual-budget-explained",
		Title:           "The Annual Budget Explained",
		Description:     "How the yearly budget is drafted, approved and reconciled against actual expenses.",
		Category:        "finance",
		Tags:            []string{"budget", "expenses", "assembly"},
		ReadTimeMinutes: 8,
	},
}
