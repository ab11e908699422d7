package wikipedia

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"loyalty-rankings/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Options struct {
	UserAgent string
	// outbound requests per second, shared by article, Commons and
	// image fetches. defaults to 1, which is what en.wikipedia.org
	// tolerates without throttling anonymous clients.
	RequestsPerSecond float64
}

type Client struct {
	http        *resty.Client
	limiter     *rate.Limiter
	commonsBase string
}

func NewClient(opts Options) (*Client, error) {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(
		"en.wikipedia.org",
		"commons.wikimedia.org",
		"upload.wikimedia.org",
	))

	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	client.SetHeader("user-agent", ua)
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/wikipedia/http")

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		http:        client,
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		commonsBase: "https://commons.wikimedia.org",
	}, nil
}

func (c *Client) get(ctx context.Context, link string) (*resty.Response, error) {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() >= 400 {
		return nil, fmt.Errorf("GET %s: %s", link, res.Status())
	}
	return res, nil
}

// DownloadImage fetches the raw bytes of an image URL.
func (c *Client) DownloadImage(ctx context.Context, link string) ([]byte, error) {
	res, err := c.get(ctx, link)
	if err != nil {
		return nil, err
	}
	return res.Body(), nil
}
