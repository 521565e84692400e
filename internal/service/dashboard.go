package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/sync/errgroup"

	"github.com/salesops/so-ui-api/internal/backend"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// WidgetSpec describes one dashboard widget: which backend summary endpoint
// feeds it and how to extract the figure from the response.
type WidgetSpec struct {
	Name string
	Path string
	Expr string // JMESPath over the full response body
}

// WidgetValue is one evaluated dashboard figure.
type WidgetValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Backend   *backend.Client
	Widgets   []WidgetSpec
	Evaluator JMESPathEvaluator // optional, defaults to go-jmespath
	Logger    *slog.Logger
}

// DashboardService assembles the home-page summary by fanning out to the
// backend summary endpoints concurrently.
type DashboardService struct {
	backend *backend.Client
	widgets []WidgetSpec
	jems    JMESPathEvaluator
	logger  *slog.Logger
}

// NewDashboardService constructs a DashboardService, validating every widget
// expression up front.
func NewDashboardService(opts DashboardServiceOptions) (*DashboardService, error) {
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, w := range opts.Widgets {
		if err := jems.Validate(w.Expr); err != nil {
			return nil, fmt.Errorf("widget %q: invalid expression %q: %w", w.Name, w.Expr, err)
		}
	}
	return &DashboardService{
		backend: opts.Backend,
		widgets: opts.Widgets,
		jems:    jems,
		logger:  logger,
	}, nil
}

// Summary fetches and evaluates every widget. One failing widget fails the
// whole summary; the caller decides how to degrade.
func (s *DashboardService) Summary(ctx context.Context) ([]WidgetValue, error) {
	values := make([]WidgetValue, len(s.widgets))

	g, ctx := errgroup.WithContext(ctx)
	for i, w := range s.widgets {
		g.Go(func() error {
			body, err := s.backend.GetRaw(ctx, w.Path)
			if err != nil {
				return fmt.Errorf("widget %q: %w", w.Name, err)
			}
			value, err := s.extract(w, body)
			if err != nil {
				return err
			}
			values[i] = WidgetValue{Name: w.Name, Value: value}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *DashboardService) extract(w WidgetSpec, body any) (float64, error) {
	result, err := s.jems.Evaluate(w.Expr, body)
	if err != nil {
		return 0, fmt.Errorf("widget %q: evaluate %q: %w", w.Name, w.Expr, err)
	}
	switch v := result.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case nil:
		return 0, fmt.Errorf("widget %q: expression %q matched nothing", w.Name, w.Expr)
	default:
		return 0, fmt.Errorf("widget %q: expression %q yielded %T, want number", w.Name, w.Expr, result)
	}
}
