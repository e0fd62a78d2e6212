package news

import "strings"

type tagBucket struct {
	Tag      string
	Keywords []string
}

// tagBuckets map lower-cased title keywords to category tags. This is a
// deterministic membership scan, scanned in fixed order so tag output is
// stable; a title may earn zero or several tags.
var tagBuckets = []tagBucket{
	{"crypto", []string{"bitcoin", "ethereum", "crypto", "blockchain", "btc", "eth"}},
	{"stocks", []string{"stock", "shares", "equity", "nasdaq", "s&p", "dow"}},
	{"forex", []string{"forex", "currency", "dollar", "euro", "yen", "pound"}},
	{"commodities", []string{"gold", "oil", "silver", "commodity", "crude"}},
	{"fed", []string{"fed", "federal reserve", "interest rate", "powell"}},
	{"earnings", []string{"earnings", "revenue", "profit", "quarterly"}},
	{"macro", []string{"gdp", "inflation", "unemployment", "cpi", "ppi"}},
}

// ExtractTags derives category tags from an article title.
func ExtractTags(title string) []string {
	lower := strings.ToLower(title)
	tags := make([]string, 0, 2)
	for _, bucket := range tagBuckets {
		for _, keyword := range bucket.Keywords {
			if strings.Contains(lower, keyword) {
				tags = append(tags, bucket.Tag)
				break
			}
		}
	}
	return tags
}
