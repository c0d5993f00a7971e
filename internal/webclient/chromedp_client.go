package webclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/raysh454/labelboard/internal/logging"
)

// ChromedpClient loads URLs in headless Chrome. Only GET is supported; the
// response body is the text the browser shows, which for a JSON endpoint is
// the JSON document itself.
type ChromedpClient struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
	idleAfter   time.Duration
	logger      logging.Logger
}

// NewChromedpClient prepares a browser allocator. Chrome itself is started
// lazily on the first request.
func NewChromedpClient(cfg Config, logger logging.Logger) (*ChromedpClient, error) {
	if logger == nil {
		logger = logging.Nop{}
	}
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if cfg.ShowBrowser {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromedpClient{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		timeout:     cfg.timeout(),
		idleAfter:   cfg.idleAfter(),
		logger:      logger.With(logging.Field{Key: "backend", Value: "chromedp"}),
	}, nil
}

// waitNetworkIdle signals once no request has been in flight for idleAfter.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) <-chan struct{} {
	idleChan := make(chan struct{}, 1)
	var activeReqs int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(idleAfter, func() {
			if atomic.LoadInt32(&activeReqs) == 0 {
				once.Do(func() {
					idleChan <- struct{}{}
				})
			}
		})
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			atomic.AddInt32(&activeReqs, 1)
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			if atomic.AddInt32(&activeReqs, -1) <= 0 {
				startTimer()
			}
		}
	})

	return idleChan
}

func (cdc *ChromedpClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if m := strings.ToUpper(req.Method); m != "" && m != http.MethodGet {
		return nil, fmt.Errorf("chromedp backend: method %s not supported", m)
	}

	tabCtx, cancelTab := chromedp.NewContext(cdc.allocCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, cdc.timeout)
	defer cancelTimeout()

	var (
		mu         sync.Mutex
		statusCode int
		statusText string
		headers    = http.Header{}
	)
	chromedp.ListenTarget(tabCtx, func(ev any) {
		e, ok := ev.(*network.EventResponseReceived)
		if !ok || e.Type != network.ResourceTypeDocument {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if statusCode != 0 {
			return
		}
		statusCode = int(e.Response.Status)
		statusText = e.Response.StatusText
		for k, v := range e.Response.Headers {
			headers.Set(k, fmt.Sprint(v))
		}
	})
	idle := waitNetworkIdle(tabCtx, cdc.idleAfter)

	cdc.logger.Debug("navigating", logging.Field{Key: "url", Value: req.URL})
	if err := chromedp.Run(tabCtx, network.Enable(), chromedp.Navigate(req.URL)); err != nil {
		cdc.logger.Warn("chromedp navigate failed",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("navigate: %w", err)
	}

	select {
	case <-idle:
	case <-tabCtx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("waiting for network idle: %w", tabCtx.Err())
	}

	var outer string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &outer, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	body, err := documentText(outer)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	status := fmt.Sprintf("%d %s", statusCode, statusText)
	if statusText == "" {
		status = fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode))
	}
	return &Response{
		Request:    req,
		Body:       []byte(body),
		Headers:    headers,
		StatusCode: statusCode,
		Status:     strings.TrimSpace(status),
		FetchedAt:  time.Now(),
	}, nil
}

// documentText returns what the browser displays for a loaded document.
// Browsers wrap plain-text and JSON responses in a single <pre>.
func documentText(outerHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(outerHTML))
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}
	if pre := doc.Find("body > pre").First(); pre.Length() > 0 {
		return pre.Text(), nil
	}
	return doc.Find("body").Text(), nil
}

// Get is a convenience method for simple GET requests
func (cdc *ChromedpClient) Get(ctx context.Context, url string) (*Response, error) {
	return cdc.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

func (cdc *ChromedpClient) Close() error {
	cdc.allocCancel()
	return nil
}
