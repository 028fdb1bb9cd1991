package sites

import (
	"time"

	"github.com/scholarhub/scholarship-crawler/internal/classify"
)

// Builtin returns the built-in profiles for the supported scholarship
// sources. Callers get fresh copies; mutating the result never affects
// later calls.
func Builtin() []Profile {
	return []Profile{
		{
			Name:     "collegescholarships",
			Provider: "CollegeScholarships.org",
			AllowedDomains: []string{
				"collegescholarships.org",
			},
			StartURLs: []string{
				"https://www.collegescholarships.org/scholarships/",
				"https://www.collegescholarships.org/scholarships/state/",
				"https://www.collegescholarships.org/scholarships/field-of-study/",
			},
			ListingSelectors: []string{
				`a[href*="/scholarships/"]::attr(href)`,
				`.category-list a::attr(href)`,
			},
			Selectors: map[string][]string{
				"title": {
					"h1.entry-title::text",
					"h1::text",
					".scholarship-title::text",
					"title::text",
				},
				"description": {
					".entry-content p::text",
					".description::text",
					".summary::text",
				},
				"amount": {
					".scholarship-amount::text",
					".award-amount::text",
					".value::text",
				},
				"tags": {
					".tags a::text",
					".categories a::text",
				},
			},
			Keywords: []classify.Entry{
				{Category: "STEM", Keywords: []string{"stem", "engineering", "computer", "technology", "science", "math", "programming"}},
				{Category: "Business", Keywords: []string{"business", "economics", "finance", "accounting", "mba", "marketing"}},
				{Category: "Healthcare", Keywords: []string{"medical", "nursing", "health", "medicine", "pharmacy", "dental"}},
				{Category: "Arts", Keywords: []string{"art", "music", "theater", "creative", "design", "literature", "humanities"}},
				{Category: "Education", Keywords: []string{"education", "teaching", "teacher", "pedagogy"}},
				{Category: "Need-Based", Keywords: []string{"need", "financial", "low-income", "pell"}},
				{Category: "Merit-Based", Keywords: []string{"merit", "academic", "achievement", "gpa", "honor"}},
			},
			DownloadDelay: 3 * time.Second,
			MaxConcurrent: 1,
			MaxPages:      50,
		},
		{
			Name:     "uncf",
			Provider: "United Negro College Fund (UNCF)",
			AllowedDomains: []string{
				"uncf.org",
			},
			StartURLs: []string{
				"https://uncf.org/scholarships",
				"https://uncf.org/scholarships/undergraduate-scholarships",
				"https://uncf.org/scholarships/graduate-scholarships",
				"https://uncf.org/scholarships/high-school-scholarships",
			},
			ListingSelectors: []string{
				`.scholarship-card a::attr(href)`,
				`a[href*="/scholarship/"]::attr(href)`,
				`.program-card a::attr(href)`,
			},
			Selectors: map[string][]string{
				"title": {
					"h1.page-title::text",
					"h1.program-title::text",
					"h1::text",
					".scholarship-title::text",
				},
				"description": {
					".program-description::text",
					".scholarship-description::text",
					".content-body::text",
					".field-body::text",
				},
				"amount": {
					".award-amount::text",
					".program-amount::text",
					".field-award-amount .field-item::text",
				},
				"deadline": {
					".deadline-date::text",
					".application-deadline::text",
					".field-deadline .field-item::text",
				},
				"tags": {
					".program-tags a::text",
					".field-tags a::text",
				},
			},
			Keywords: []classify.Entry{
				{Category: "STEM", Keywords: []string{"stem", "engineering", "computer", "technology", "science", "math", "programming", "coding", "data", "cybersecurity"}},
				{Category: "Business", Keywords: []string{"business", "economics", "finance", "accounting", "mba", "marketing", "management", "entrepreneurship"}},
				{Category: "Healthcare", Keywords: []string{"medical", "nursing", "health", "medicine", "pharmacy", "dental", "healthcare", "public health"}},
				{Category: "Education", Keywords: []string{"education", "teaching", "teacher", "pedagogy", "childhood"}},
				{Category: "Arts", Keywords: []string{"art", "music", "theater", "creative", "design", "literature", "humanities", "communication", "media"}},
				{Category: "Law", Keywords: []string{"law", "legal", "justice", "pre-law", "paralegal"}},
				{Category: "Social Work", Keywords: []string{"social work", "community", "nonprofit", "public service"}},
			},
			DefaultTags:   []string{"African American", "Minority"},
			DownloadDelay: 4 * time.Second,
			MaxConcurrent: 1,
			MaxPages:      50,
		},
		{
			Name:     "hsf",
			Provider: "Hispanic Scholarship Fund (HSF)",
			AllowedDomains: []string{
				"hsf.net",
			},
			StartURLs: []string{
				"https://www.hsf.net/scholarship",
				"https://www.hsf.net/scholarship/high-school",
				"https://www.hsf.net/scholarship/undergraduate",
				"https://www.hsf.net/scholarship/graduate",
			},
			ListingSelectors: []string{
				`.scholarship-item a::attr(href)`,
				`a[href*="/scholarship/"]::attr(href)`,
				`.program-link a::attr(href)`,
			},
			Selectors: map[string][]string{
				"title": {
					"h1.scholarship-title::text",
					"h1.page-title::text",
					"h1::text",
					".program-title::text",
				},
				"description": {
					".scholarship-description::text",
					".program-description::text",
					".content-area::text",
					".description::text",
				},
				"amount": {
					".award-amount::text",
					".scholarship-amount::text",
				},
				"deadline": {
					".deadline::text",
					".application-deadline::text",
				},
				"eligibility": {
					".eligibility-requirements li::text",
					".eligibility li::text",
					".requirements li::text",
				},
				"tags": {
					".program-tags a::text",
				},
			},
			DefaultFields: map[string]string{
				"eligibility":  "Hispanic/Latino heritage | US citizenship or legal residency | Minimum GPA requirement",
				"requirements": "Complete online application | Submit transcripts | Provide letters of recommendation",
			},
			ApplyFallback: "https://www.hsf.net/apply",
			Keywords: []classify.Entry{
				{Category: "STEM", Keywords: []string{"stem", "engineering", "computer", "technology", "science", "math", "programming", "coding", "data", "cybersecurity", "robotics"}},
				{Category: "Business", Keywords: []string{"business", "economics", "finance", "accounting", "mba", "marketing", "management", "entrepreneurship", "commerce"}},
				{Category: "Healthcare", Keywords: []string{"medical", "nursing", "health", "medicine", "pharmacy", "dental", "healthcare", "public health", "veterinary"}},
				{Category: "Education", Keywords: []string{"education", "teaching", "teacher", "pedagogy", "childhood", "bilingual"}},
				{Category: "Arts", Keywords: []string{"art", "music", "theater", "creative", "design", "literature", "humanities", "communication", "media", "journalism"}},
				{Category: "Law", Keywords: []string{"law", "legal", "justice", "pre-law", "paralegal", "criminal justice"}},
				{Category: "Social Work", Keywords: []string{"social work", "community", "nonprofit", "public service", "psychology"}},
				{Category: "Agriculture", Keywords: []string{"agriculture", "farming", "agricultural", "food science"}},
			},
			DefaultTags:   []string{"Hispanic", "Latino", "Minority"},
			DownloadDelay: 3 * time.Second,
			MaxConcurrent: 1,
			MaxPages:      50,
		},
		{
			Name:     "apia",
			Provider: "APIA Scholars",
			AllowedDomains: []string{
				"apiascholars.org",
			},
			StartURLs: []string{
				"https://www.apiascholars.org/scholarships",
				"https://www.apiascholars.org/scholarships/undergraduate",
				"https://www.apiascholars.org/scholarships/graduate",
			},
			ListingSelectors: []string{
				`.scholarship-card a::attr(href)`,
				`a[href*="/scholarship"]::attr(href)`,
				`.program-card a::attr(href)`,
			},
			Selectors: map[string][]string{
				"title": {
					"h1.scholarship-title::text",
					"h1.page-title::text",
					"h1::text",
					".program-name::text",
				},
				"description": {
					".scholarship-description p::text",
					".program-description p::text",
					".content p::text",
				},
				"amount": {
					".award-amount::text",
				},
				"deadline": {
					".deadline::text",
					".application-deadline::text",
				},
				"eligibility": {
					".eligibility-criteria li::text",
					".eligibility li::text",
				},
			},
			DefaultFields: map[string]string{
				"eligibility":  "Asian Pacific Islander American heritage | US citizenship or legal residency | Enrolled in accredited institution",
				"requirements": "Complete online application | Submit official transcripts | Provide letters of recommendation | Write personal essay",
			},
			ApplyFallback: "https://www.apiascholars.org/apply",
			Keywords: []classify.Entry{
				{Category: "STEM", Keywords: []string{"stem", "engineering", "computer", "technology", "science", "math"}},
				{Category: "Business", Keywords: []string{"business", "economics", "finance", "accounting", "mba"}},
				{Category: "Healthcare", Keywords: []string{"medical", "nursing", "health", "medicine", "pharmacy"}},
				{Category: "Education", Keywords: []string{"education", "teaching", "teacher"}},
				{Category: "Arts", Keywords: []string{"art", "music", "creative", "design", "media"}},
				{Category: "Law", Keywords: []string{"law", "legal", "justice"}},
			},
			DefaultTags:   []string{"Asian Pacific Islander", "APIA", "Minority"},
			DownloadDelay: 3 * time.Second,
			MaxConcurrent: 1,
			MaxPages:      50,
		},
		{
			Name:     "native_american",
			Provider: "Native American Organization",
			ProviderByDomain: map[string]string{
				"aises.org":       "American Indian Science and Engineering Society (AISES)",
				"naja.com":        "Native American Journalists Association (NAJA)",
				"collegefund.org": "American Indian College Fund",
				"aianta.org":      "American Indian Alaska Native Tourism Association (AIANTA)",
			},
			AllowedDomains: []string{
				"aises.org",
				"naja.com",
				"collegefund.org",
				"aianta.org",
			},
			StartURLs: []string{
				"https://www.aises.org/scholarships",
				"https://www.naja.com/scholarships",
				"https://collegefund.org/students/scholarships/",
				"https://www.aianta.org/scholarships/",
			},
			ListingSelectors: []string{
				`.scholarship-item a::attr(href)`,
				`.program-card a::attr(href)`,
				`a[href*="/scholarship"]::attr(href)`,
				`.scholarship-link::attr(href)`,
				`.award-card a::attr(href)`,
			},
			Keywords: []classify.Entry{
				{Category: "STEM", Keywords: []string{"stem", "engineering", "computer", "technology", "science", "math", "environmental"}},
				{Category: "Business", Keywords: []string{"business", "economics", "finance", "accounting", "entrepreneurship"}},
				{Category: "Healthcare", Keywords: []string{"medical", "nursing", "health", "medicine", "public health"}},
				{Category: "Education", Keywords: []string{"education", "teaching", "teacher", "childhood"}},
				{Category: "Arts", Keywords: []string{"art", "music", "creative", "design", "literature", "cultural arts"}},
				{Category: "Law", Keywords: []string{"law", "legal", "justice", "tribal law"}},
				{Category: "Journalism", Keywords: []string{"journalism", "media", "communication", "broadcasting"}},
				{Category: "Environmental", Keywords: []string{"environmental", "natural resources", "forestry", "wildlife"}},
				{Category: "Social Work", Keywords: []string{"social work", "community", "tribal services"}},
			},
			DefaultTags:   []string{"Native American", "Indigenous", "Minority"},
			DownloadDelay: 4 * time.Second,
			MaxConcurrent: 1,
			MaxPages:      50,
		},
	}
}
