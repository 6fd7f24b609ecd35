package filter

// navigationBlocklist holds boilerplate phrases that never identify a
// regulatory document. Matching is case-insensitive against the
// whitespace-collapsed link text.
var navigationBlocklist = map[string]struct{}{}

func init() {
	for _, phrase := range blockedPhrases {
		navigationBlocklist[phrase] = struct{}{}
	}
}

var blockedPhrases = []string{
	// generic navigation
	"home", "about", "about us", "contact", "contact us", "search", "login",
	"logout", "register", "sign in", "sign up", "sign out", "privacy",
	"privacy policy", "terms", "terms of service", "terms and conditions",
	"sitemap", "site map", "cookie", "cookies", "disclaimer", "legal",
	"help", "faq", "faqs", "support", "feedback",

	// UI chrome
	"skip to content", "skip to main content", "skip navigation", "main content",
	"screen reader", "accessible mode", "accessibility", "text size", "font size",
	"high contrast", "print", "share", "email", "tweet", "facebook", "twitter",
	"linkedin", "instagram", "youtube", "social media", "follow us", "subscribe",
	"newsletter", "logo", "banner", "header", "footer", "menu", "navigation",
	"breadcrumb", "back to top", "scroll to top", "read more", "learn more",
	"click here", "view all", "see all", "show more", "load more", "next",
	"previous", "first", "last", "page", "pagination",
	"turn on more accessible mode",

	// language selectors
	"english", "hindi", "हिंदी", "arabic", "العربية", "français", "español",
	"select language", "change language", "translate",

	// generic site sections
	"services", "all services", "our services", "products", "solutions",
	"resources", "downloads", "documents", "publications", "media", "news",
	"events", "calendar", "gallery", "photos", "videos", "blog", "articles",
	"press room", "media center", "media centre", "newsroom", "careers", "jobs",
	"vacancies", "recruitment", "opportunities", "work with us", "tenders",
	"bids", "procurement", "auction", "rfp", "rfq", "eoi",

	// organization structure
	"who we are", "leadership", "management", "board", "directors", "team",
	"staff", "employees", "departments", "divisions", "branches", "offices",
	"locations", "locate", "find us", "visit us", "address", "map", "directions",
	"mission", "vision", "values", "goals", "objectives", "history", "milestones",
	"who's who", "whos who", "organogram", "organization chart",

	// audience portals
	"for employers", "for employees", "for individuals", "for businesses",
	"for companies", "for citizens", "for taxpayers", "for members",
	"employer services", "employee services", "citizen services",
	"for international workers", "for office use", "domestic worker",
	"domestic workers", "partner services", "international agreements",

	// helpdesk and outreach
	"help desk", "toll free", "tollfree", "call center", "customer care",
	"photo albums", "awareness workshops", "previous awareness workshops",
	"service centres", "taxpayer service", "approved services centers",
	"training institutes", "capacity building",

	// portal how-to pages
	"how to register", "how to file", "how to pay", "how to print",
	"requirements for registration", "tax registration", "tax obligations",
	"tax types", "tax rates", "taxpayer segments", "e-commerce", "e-filing",
	"e-payment", "online services", "large taxpayer office", "area offices",
	"regional offices", "taxpayer service centres",

	// tax-type index pages rather than documents
	"individual income tax", "corporate income tax", "value added tax (vat)",
	"pay as you earn (paye)", "personal income tax (pit)", "withholding tax",
	"installment tax", "advance tax", "rental income tax", "capital gains tax",
	"turnover tax (tot)", "domestic tax", "individual",

	// category index pages rather than documents
	"circulars", "notifications", "orders", "resolutions", "regulations",
	"acts", "laws", "rules", "guidelines", "manuals", "handbooks",
	"forms", "templates", "formats", "public notices", "press releases",
	"resolutions & circulars", "laws & regulations", "guidance",
}

// documentKeywords indicate the link names an actual issuance.
var documentKeywords = []string{
	"circular", "notification", "order", "resolution", "memo", "memorandum",
	"advisory", "guideline", "directive", "gazette", "notice", "announcement",
	"amendment", "act", "bill", "rule", "regulation", "ordinance", "decree",
	"press release", "public notice", "practice note", "interpretation note",
	"revenue memorandum", "labor advisory", "tax advisory",
}

// regulatoryKeywords indicate payroll/tax/labor subject matter.
var regulatoryKeywords = []string{
	"income tax", "corporate tax", "vat", "gst", "customs", "excise",
	"withholding tax", "tds", "tcs", "capital gains", "tax rate", "tax slab",
	"tax exemption", "tax deduction", "tax credit", "tax relief", "tax rebate",
	"filing", "return", "assessment", "levy", "duty", "cess", "surcharge",
	"minimum wage", "wage revision", "wage rate", "salary", "remuneration",
	"overtime", "working hours", "leave", "holiday", "bonus", "gratuity",
	"termination", "retrenchment", "layoff", "severance", "notice period",
	"employment", "labor code", "labour law", "industrial relations",
	"provident fund", "pension", "superannuation", "retirement", "epf", "ppf",
	"social security", "insurance", "esi", "esic", "health insurance",
	"contribution", "employer contribution", "employee contribution",
	"compliance", "statutory", "mandatory", "deadline", "due date",
	"penalty", "interest", "fine", "prosecution", "enforcement",
}

// navURLFragments mark URLs that belong to site chrome rather than content.
// A URL carrying one still passes when it points at a document file.
var navURLFragments = []string{
	"/about", "/contact", "/login", "/register", "/search", "/help",
	"/faq", "/privacy", "/terms", "/sitemap", "/careers", "/jobs",
	"/services", "/products", "?lang=", "&lang=", "#",
	"javascript:", "mailto:", "tel:",
}

// docURLFragments mark URL path segments that suggest an actual document.
var docURLFragments = []string{
	"/circular", "/notification", "/order", "/gazette", "/notice",
	"download", "attachment",
}
