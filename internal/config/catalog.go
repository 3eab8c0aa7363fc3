package config

import "github.com/jmlester/the-ai-brief/internal/model"

// DefaultSources returns the built-in AI source catalog. Callers get a fresh
// slice each time; mutating the result never affects later calls.
func DefaultSources() []model.Source {
	sources := make([]model.Source, len(catalog))
	copy(sources, catalog)
	return sources
}

var catalog = []model.Source{
	{
		ID:        "openai-blog",
		Name:      "OpenAI Blog",
		URL:       "https://openai.com/blog/rss",
		Kind:      model.KindRSS,
		Category:  "Labs",
		Summary:   "Research releases, product launches, and safety updates from OpenAI.",
		Tags:      []string{"models", "research", "product"},
		Enabled:   true,
		Preferred: true,
	},
	{
		ID:        "google-ai-blog",
		Name:      "Google AI Blog",
		URL:       "https://blog.google/technology/ai/rss/",
		Kind:      model.KindRSS,
		Category:  "Labs",
		Summary:   "Updates on Google research, Gemini, and applied AI.",
		Tags:      []string{"research", "product", "enterprise"},
		Enabled:   true,
		Preferred: true,
	},
	{
		ID:       "deepmind-blog",
		Name:     "DeepMind Blog",
		URL:      "https://deepmind.google/blog/rss.xml",
		Kind:     model.KindRSS,
		Category: "Labs",
		Summary:  "Research highlights and frontier model advances from DeepMind.",
		Tags:     []string{"research", "frontier"},
		Enabled:  true,
	},
	{
		ID:       "anthropic-news",
		Name:     "Anthropic News",
		URL:      "https://www.anthropic.com/news.rss",
		Kind:     model.KindRSS,
		Category: "Labs",
		Summary:  "Anthropic announcements, research, and safety notes.",
		Tags:     []string{"safety", "models"},
		Enabled:  true,
	},
	{
		ID:       "the-verge-ai",
		Name:     "The Verge AI",
		URL:      "https://www.theverge.com/rss/ai/index.xml",
		Kind:     model.KindRSS,
		Category: "Media",
		Summary:  "Mainstream coverage of AI products and industry moves.",
		Tags:     []string{"product", "industry"},
		Enabled:  true,
	},
	{
		ID:       "techcrunch-ai",
		Name:     "TechCrunch AI",
		URL:      "https://techcrunch.com/tag/artificial-intelligence/feed/",
		Kind:     model.KindRSS,
		Category: "Media",
		Summary:  "Startup funding, product launches, and market coverage.",
		Tags:     []string{"startups", "funding"},
		Enabled:  true,
	},
	{
		ID:       "venturebeat-ai",
		Name:     "VentureBeat AI",
		URL:      "https://venturebeat.com/category/ai/feed/",
		Kind:     model.KindRSS,
		Category: "Media",
		Summary:  "Enterprise AI news, tooling, and market analysis.",
		Tags:     []string{"enterprise", "tools"},
		Enabled:  true,
	},
	{
		ID:       "mit-tech-review-ai",
		Name:     "MIT Technology Review AI",
		URL:      "https://www.technologyreview.com/topic/artificial-intelligence/feed/",
		Kind:     model.KindRSS,
		Category: "Media",
		Summary:  "High-quality reporting on AI research and impact.",
		Tags:     []string{"policy", "research"},
		Enabled:  true,
	},
	{
		ID:       "ars-technica-ai",
		Name:     "Ars Technica AI",
		URL:      "https://feeds.arstechnica.com/arstechnica/technology-lab",
		Kind:     model.KindRSS,
		Category: "Media",
		Summary:  "Technical coverage of AI and computing trends.",
		Tags:     []string{"technical", "industry"},
		Enabled:  true,
	},
	{
		ID:       "the-decoder",
		Name:     "The Decoder",
		URL:      "https://the-decoder.com/feed/",
		Kind:     model.KindRSS,
		Category: "Media",
		Summary:  "Daily AI coverage with product and lab updates.",
		Tags:     []string{"daily", "product"},
		Enabled:  true,
	},
	{
		ID:       "hugging-face-blog",
		Name:     "Hugging Face Blog",
		URL:      "https://huggingface.co/blog/feed.xml",
		Kind:     model.KindRSS,
		Category: "Community",
		Summary:  "Open-source models, datasets, and tutorials.",
		Tags:     []string{"open-source", "tools"},
		Enabled:  true,
	},
	{
		ID:       "hacker-news-ai",
		Name:     "Hacker News AI Search",
		URL:      "https://hnrss.org/newest?q=artificial%20intelligence",
		Kind:     model.KindRSS,
		Category: "Community",
		Summary:  "Fresh AI links from the HN community.",
		Tags:     []string{"community", "links"},
	},
	{
		ID:       "reddit-ml",
		Name:     "Reddit r/MachineLearning",
		URL:      "https://www.reddit.com/r/MachineLearning/.rss",
		Kind:     model.KindRSS,
		Category: "Community",
		Summary:  "Research discussions, paper highlights, and debates.",
		Tags:     []string{"research", "discussion"},
	},
	{
		ID:       "papers-with-code",
		Name:     "Papers with Code",
		URL:      "https://paperswithcode.com/feed.xml",
		Kind:     model.KindRSS,
		Category: "Research",
		Summary:  "New papers with code implementations.",
		Tags:     []string{"research", "code"},
	},
	{
		ID:       "arxiv-cs-ai",
		Name:     "arXiv AI (cs.AI)",
		URL:      "http://export.arxiv.org/rss/cs.AI",
		Kind:     model.KindRSS,
		Category: "Research",
		Summary:  "Latest arXiv submissions in AI.",
		Tags:     []string{"research", "papers"},
	},
	{
		ID:       "arxiv-cs-lg",
		Name:     "arXiv Machine Learning (cs.LG)",
		URL:      "http://export.arxiv.org/rss/cs.LG",
		Kind:     model.KindRSS,
		Category: "Research",
		Summary:  "Latest arXiv submissions in machine learning.",
		Tags:     []string{"research", "papers"},
	},
	{
		ID:       "nvidia-ai-blog",
		Name:     "NVIDIA AI Blog",
		URL:      "https://blogs.nvidia.com/blog/category/deep-learning/feed/",
		Kind:     model.KindRSS,
		Category: "Labs",
		Summary:  "Infrastructure and model updates from NVIDIA.",
		Tags:     []string{"hardware", "infrastructure"},
	},
	{
		ID:       "stanford-hai",
		Name:     "Stanford HAI News",
		URL:      "https://hai.stanford.edu/news/rss.xml",
		Kind:     model.KindRSS,
		Category: "Policy",
		Summary:  "Academic research, policy, and societal impact.",
		Tags:     []string{"policy", "academic"},
	},
	{
		ID:       "oecd-ai-policy",
		Name:     "OECD AI Policy",
		URL:      "https://oecd.ai/en/rss",
		Kind:     model.KindRSS,
		Category: "Policy",
		Summary:  "Global policy updates and AI governance.",
		Tags:     []string{"policy", "government"},
	},
	{
		ID:       "partnership-on-ai",
		Name:     "Partnership on AI",
		URL:      "https://partnershiponai.org/feed/",
		Kind:     model.KindRSS,
		Category: "Policy",
		Summary:  "Best practices and policy frameworks.",
		Tags:     []string{"policy", "ethics"},
	},
	{
		ID:       "xai-social",
		Name:     "xAI",
		URL:      "https://x.com/xai",
		Kind:     model.KindSocial,
		Category: "Social",
		Summary:  "Updates and announcements from xAI.",
		Tags:     []string{"social", "announcements"},
	},
	{
		ID:       "openai-social",
		Name:     "OpenAI",
		URL:      "https://x.com/OpenAI",
		Kind:     model.KindSocial,
		Category: "Social",
		Summary:  "Official OpenAI social updates.",
		Tags:     []string{"social", "announcements"},
	},
	{
		ID:       "deepmind-social",
		Name:     "Google DeepMind",
		URL:      "https://x.com/GoogleDeepMind",
		Kind:     model.KindSocial,
		Category: "Social",
		Summary:  "DeepMind social updates and research signals.",
		Tags:     []string{"social", "research"},
	},
}
