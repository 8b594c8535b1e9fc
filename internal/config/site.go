package config

// SiteConfig holds per-site settings for evaluations. Sites behind a
// login or with crawl-hostile sections need cookies, extra headers or
// pattern filters.
type SiteConfig struct {
	// Cookie is an HTTP cookie to send when evaluating this site.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers to include in requests to this site.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Depth overrides the global crawl depth for this site.
	// If zero, the global CrawlDepth is used.
	Depth int `yaml:"depth,omitempty"`

	// IgnorePatterns are URL path patterns to skip during crawling,
	// matched with glob syntax.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// FollowPatterns restrict crawling to matching URL paths when set.
	FollowPatterns []string `yaml:"followPatterns,omitempty"`
}

// File represents the structure of the .a11yscan configuration file.
type File struct {
	// Sites maps hostnames to their site-specific configurations,
	// e.g. "www.example.com.br".
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults is applied to every site unless overridden.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a hostname, merging the
// site-specific settings over the defaults.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	result := cf.Defaults

	if siteConfig, ok := cf.Sites[host]; ok {
		if siteConfig.Cookie != "" {
			result.Cookie = siteConfig.Cookie
		}
		if siteConfig.Depth != 0 {
			result.Depth = siteConfig.Depth
		}
		if len(siteConfig.Headers) > 0 {
			if result.Headers == nil {
				result.Headers = make(map[string]string)
			}
			for k, v := range siteConfig.Headers {
				result.Headers[k] = v
			}
		}
		if len(siteConfig.IgnorePatterns) > 0 {
			result.IgnorePatterns = siteConfig.IgnorePatterns
		}
		if len(siteConfig.FollowPatterns) > 0 {
			result.FollowPatterns = siteConfig.FollowPatterns
		}
	}

	return result
}
