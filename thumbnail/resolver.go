package thumbnail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"refdeck/internal/logger"
)

// Resolver looks up a preview image for a content URL through an ordered
// chain of providers. Every step is best-effort: network and parse errors
// count as "no thumbnail from this step" and the chain moves on. A fully
// failed chain yields "".
type Resolver struct {
	client *http.Client

	// Overridable in tests.
	TikTokOEmbedBase string
	NoembedBase      string
}

func NewResolver() *Resolver {
	return &Resolver{
		client:           &http.Client{Timeout: 10 * time.Second},
		TikTokOEmbedBase: "https://www.tiktok.com/oembed",
		NoembedBase:      "https://noembed.com/embed",
	}
}

type step func(ctx context.Context, u *url.URL) string

// Resolve returns the first thumbnail URL any provider yields, or "".
func (r *Resolver) Resolve(ctx context.Context, rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}

	steps := []step{
		r.fromTikTokOEmbed,
		r.fromYouTubeURL,
		r.fromNoembed,
		r.fromPageMeta,
		r.fromImageExtension,
	}
	for _, s := range steps {
		if thumb := s(ctx, u); thumb != "" {
			return thumb
		}
	}
	return ""
}

func (r *Resolver) fromTikTokOEmbed(ctx context.Context, u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	if host != "tiktok.com" && !strings.HasSuffix(host, ".tiktok.com") {
		return ""
	}
	return r.fetchOEmbedThumbnail(ctx, fmt.Sprintf("%s?url=%s", r.TikTokOEmbedBase, url.QueryEscape(u.String())))
}

var youTubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)

// fromYouTubeURL synthesizes the thumbnail URL from the video id without a
// network call.
func (r *Resolver) fromYouTubeURL(_ context.Context, u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	var id string
	switch {
	case host == "youtu.be":
		id = strings.Trim(u.Path, "/")
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if u.Path == "/watch" {
			id = u.Query().Get("v")
		} else if strings.HasPrefix(u.Path, "/shorts/") {
			id = strings.Trim(strings.TrimPrefix(u.Path, "/shorts/"), "/")
		}
	}
	if id == "" || !youTubeIDPattern.MatchString(id) {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
}

func (r *Resolver) fromNoembed(ctx context.Context, u *url.URL) string {
	return r.fetchOEmbedThumbnail(ctx, fmt.Sprintf("%s?url=%s", r.NoembedBase, url.QueryEscape(u.String())))
}

// fromPageMeta fetches the page itself and scans Open Graph and Twitter
// card meta tags for an image.
func (r *Resolver) fromPageMeta(ctx context.Context, u *url.URL) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return ""
	}
	resp, err := r.client.Do(req)
	if err != nil {
		logger.Log.Debugf("thumbnail page fetch failed for %s: %v", u, err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return ""
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return ""
	}
	if img := findMetaContent(doc, "property", []string{"og:image", "og:image:url", "og:image:secure_url"}); img != "" {
		return img
	}
	return findMetaContent(doc, "name", []string{"twitter:image", "twitter:image:src", "thumbnail", "image"})
}

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

func (r *Resolver) fromImageExtension(_ context.Context, u *url.URL) string {
	ext := strings.ToLower(path.Ext(u.Path))
	if _, ok := imageExtensions[ext]; ok {
		return u.String()
	}
	return ""
}

func (r *Resolver) fetchOEmbedThumbnail(ctx context.Context, endpoint string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ""
	}
	resp, err := r.client.Do(req)
	if err != nil {
		logger.Log.Debugf("oembed lookup failed: %v", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return ""
	}

	var data struct {
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return ""
	}
	return data.ThumbnailURL
}

func findMetaContent(root *html.Node, key string, candidates []string) string {
	candidateSet := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		candidateSet[strings.ToLower(c)] = struct{}{}
	}

	var result string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil || result != "" {
			return
		}

		if n.Type == html.ElementNode && n.Data == "meta" {
			var attrValue string
			var content string
			for _, a := range n.Attr {
				keyLower := strings.ToLower(a.Key)
				if keyLower == strings.ToLower(key) {
					attrValue = strings.ToLower(a.Val)
				} else if keyLower == "content" {
					content = a.Val
				}
			}

			if content != "" && attrValue != "" {
				if _, ok := candidateSet[attrValue]; ok {
					result = content
					return
				}
			}
		}

		for c := n.FirstChild; c != nil && result == ""; c = c.NextSibling {
			walk(c)
		}
	}

	walk(root)
	return result
}
