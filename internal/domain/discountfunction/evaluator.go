package discountfunction

import (
	"fmt"

	"github.com/hanahub/ab-discount-app/internal/domain/cart"
	"github.com/hanahub/ab-discount-app/internal/domain/variantdiscount"
	"github.com/hanahub/ab-discount-app/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TargetProductRule discounts every variant of the listed products by a
// fixed percentage. A variant-level entry in the configuration wins over it.
type TargetProductRule struct {
	ProductIDs []string
	Percentage decimal.Decimal
}

func (r TargetProductRule) enabled() bool {
	return len(r.ProductIDs) > 0 && r.Percentage.IsPositive()
}

type Option func(*Evaluator)

func WithTargetProduct(rule TargetProductRule) Option {
	return func(e *Evaluator) {
		if !rule.enabled() {
			return
		}
		e.targetProducts = make(map[string]struct{}, len(rule.ProductIDs))
		for _, id := range rule.ProductIDs {
			e.targetProducts[id] = struct{}{}
		}
		e.targetPercentage = rule.Percentage
	}
}

// Evaluator turns a cart and a configuration into discount operations. It
// is immutable after construction and safe for concurrent use.
type Evaluator struct {
	targetProducts   map[string]struct{}
	targetPercentage decimal.Decimal
}

func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// group collects the lines sharing one percentage
type group struct {
	percentage decimal.Decimal
	lineIDs    []string
}

// Evaluate returns at most one ProductDiscountsAdd operation with one
// candidate per distinct percentage. Candidates follow the order in which
// their percentage first appears in the cart and targets keep cart order.
func (e *Evaluator) Evaluate(
	lines []cart.Line,
	cfg variantdiscount.Configuration,
	classes []types.DiscountClass,
) []Operation {
	operations := []Operation{}

	if len(lines) == 0 {
		return operations
	}
	if !lo.Contains(classes, types.DiscountClassProduct) {
		return operations
	}

	groups := make([]*group, 0)
	byKey := make(map[string]*group)
	for _, line := range lines {
		percentage := e.percentageFor(line, cfg)
		if !percentage.IsPositive() {
			continue
		}

		key := percentage.String()
		g, ok := byKey[key]
		if !ok {
			g = &group{percentage: percentage}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.lineIDs = append(g.lineIDs, line.ID)
	}

	if len(groups) == 0 {
		return operations
	}

	candidates := lo.Map(groups, func(g *group, _ int) ProductDiscountCandidate {
		return ProductDiscountCandidate{
			Message: Message(g.percentage),
			Targets: lo.Map(g.lineIDs, func(id string, _ int) CartLineTarget {
				return CartLineTarget{ID: id}
			}),
			Value: CandidateValue{Percentage: &Percentage{Value: g.percentage}},
		}
	})

	return append(operations, Operation{
		ProductDiscountsAdd: &ProductDiscountsAddOperation{
			Candidates:        candidates,
			SelectionStrategy: types.ProductDiscountSelectionStrategyAll,
		},
	})
}

func (e *Evaluator) percentageFor(line cart.Line, cfg variantdiscount.Configuration) decimal.Decimal {
	variant, ok := line.ProductVariant()
	if !ok {
		return decimal.Zero
	}

	if percentage := cfg.PercentageFor(variant.ID); percentage.IsPositive() {
		return percentage
	}
	if _, ok := e.targetProducts[variant.Product.ID]; ok {
		return e.targetPercentage
	}
	return decimal.Zero
}

// Message is the customer-facing label of a candidate, e.g. "20% OFF"
func Message(percentage decimal.Decimal) string {
	return fmt.Sprintf("%s%% OFF", percentage.String())
}
