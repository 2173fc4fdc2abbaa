package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/domain/lookup"
)

// KeySummary fila del resumen por clave (producto o categoría).
type KeySummary struct {
	Key        string
	Count      int
	Quantity   decimal.Decimal
	TotalValue decimal.Decimal
	Average    decimal.Decimal
}

// DeliveryReport totales de un conjunto filtrado de entregas.
type DeliveryReport struct {
	Items         []entity.Delivery
	Count         int
	TotalValue    decimal.Decimal
	TotalQuantity decimal.Decimal
	Delivered     int
	Pending       int
	Failed        int
	DeliveryRate  int // porcentaje entregado, redondeado
	ByProduct     []KeySummary
}

// ExpenseReport totales de un conjunto filtrado de gastos.
type ExpenseReport struct {
	Items      []entity.Expense
	Count      int
	TotalValue decimal.Decimal
	Average    decimal.Decimal
	ByCategory []KeySummary
}

// BuildDeliveryReport reduce las entregas ya filtradas.
// ByProduct cuenta cada entrega una vez por producto y le atribuye el valor completo de la entrega.
func BuildDeliveryReport(items []entity.Delivery, products []entity.Product) DeliveryReport {
	out := DeliveryReport{
		Items:         items,
		Count:         len(items),
		TotalValue:    decimal.Zero,
		TotalQuantity: decimal.Zero,
	}
	groups := newGroups()
	for _, d := range items {
		out.TotalValue = out.TotalValue.Add(d.DeliveryValue)
		out.TotalQuantity = out.TotalQuantity.Add(d.TotalQuantity())
		switch {
		case d.Status == entity.StatusDelivered:
			out.Delivered++
		case d.Status.IsPending():
			out.Pending++
		default:
			out.Failed++
		}

		seen := make(map[string]bool, len(d.Products))
		for _, line := range d.Products {
			key := lookup.LineName(products, line)
			g := groups.get(key)
			g.Quantity = g.Quantity.Add(line.Quantity)
			if !seen[key] {
				seen[key] = true
				g.Count++
				g.TotalValue = g.TotalValue.Add(d.DeliveryValue)
			}
		}
	}
	if out.Count > 0 {
		out.DeliveryRate = int(decimal.NewFromInt(int64(out.Delivered)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(out.Count))).
			Round(0).IntPart())
	}
	out.ByProduct = groups.rows()
	return out
}

// BuildExpenseReport reduce los gastos ya filtrados y los agrupa por nombre de categoría.
func BuildExpenseReport(items []entity.Expense, categories []entity.ExpenseCategory) ExpenseReport {
	out := ExpenseReport{
		Items:      items,
		Count:      len(items),
		TotalValue: decimal.Zero,
		Average:    decimal.Zero,
	}
	groups := newGroups()
	for _, e := range items {
		out.TotalValue = out.TotalValue.Add(e.Value)
		g := groups.get(lookup.CategoryName(categories, e.CategoryID))
		g.Count++
		g.Quantity = g.Quantity.Add(decimal.NewFromInt(1))
		g.TotalValue = g.TotalValue.Add(e.Value)
	}
	out.Average = average(out.TotalValue, out.Count)
	out.ByCategory = groups.rows()
	return out
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

type groups struct {
	byKey map[string]*KeySummary
}

func newGroups() *groups {
	return &groups{byKey: make(map[string]*KeySummary)}
}

func (g *groups) get(key string) *KeySummary {
	s, ok := g.byKey[key]
	if !ok {
		s = &KeySummary{Key: key, Quantity: decimal.Zero, TotalValue: decimal.Zero}
		g.byKey[key] = s
	}
	return s
}

// rows devuelve las filas ordenadas por clave, con el promedio calculado.
func (g *groups) rows() []KeySummary {
	out := make([]KeySummary, 0, len(g.byKey))
	for _, s := range g.byKey {
		s.Average = average(s.TotalValue, s.Count)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
