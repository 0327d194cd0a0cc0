package core

import "strings"

// Snapshot is the flat reduction of an AccountConfig. NetWorth is simplified
// to cash minus debt; illiquid asset value such as home equity is excluded.
type Snapshot struct {
	LiquidCash       float64 `json:"liquid_cash"`
	TotalDebt        float64 `json:"total_debt"`
	NetWorth         float64 `json:"net_worth"`
	MonthlyRecurring float64 `json:"monthly_recurring"`
	MonthlyIncome    float64 `json:"monthly_income"`
	ConsumerDebt     float64 `json:"consumer_debt"`
	MortgageDebt     float64 `json:"mortgage_debt"`
}

// LeafItem is one resolved money-carrying entry of a config section.
type LeafItem struct {
	Group  string
	Name   string
	Amount float64
	Meta   map[string]any
}

// leafItems resolves the flat-vs-nested ambiguity of a config section once,
// returning every money-carrying leaf it holds. A group whose values are
// themselves mappings with a balance/amount key is nested; otherwise the
// group itself is one leaf. Bare numbers are accepted at either level.
func leafItems(section any, valueKey string) []LeafItem {
	m, ok := section.(map[string]any)
	if !ok {
		return nil
	}

	var leaves []LeafItem
	for group, items := range m {
		switch val := items.(type) {
		case map[string]any:
			if hasNestedItems(val) {
				for name, item := range val {
					child, ok := item.(map[string]any)
					if !ok {
						if n, ok := asFloat(item); ok {
							leaves = append(leaves, LeafItem{Group: group, Name: name, Amount: n})
						}
						continue
					}
					if n, ok := amountFrom(child, valueKey); ok {
						leaves = append(leaves, LeafItem{Group: group, Name: name, Amount: n, Meta: child})
					}
				}
			} else if n, ok := amountFrom(val, valueKey); ok {
				leaves = append(leaves, LeafItem{Group: group, Name: group, Amount: n, Meta: val})
			}
		default:
			if n, ok := asFloat(val); ok {
				leaves = append(leaves, LeafItem{Group: group, Name: group, Amount: n})
			}
		}
	}
	return leaves
}

func hasNestedItems(m map[string]any) bool {
	for _, v := range m {
		if _, ok := v.(map[string]any); ok {
			return true
		}
	}
	return false
}

func amountFrom(m map[string]any, valueKey string) (float64, bool) {
	if v, ok := m[valueKey]; ok {
		return asFloat(v)
	}
	if v, ok := m["amount"]; ok {
		return asFloat(v)
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Flatten reduces a nested section to {leaf name -> amount}, isolating the
// shape ambiguity into one place instead of re-sniffing it at every call
// site.
func Flatten(section map[string]any, valueKey string) map[string]float64 {
	flat := make(map[string]float64)
	for _, leaf := range leafItems(map[string]any(section), valueKey) {
		flat[leaf.Name] = leaf.Amount
	}
	return flat
}

func (c AccountConfig) section(name string) any {
	if c == nil {
		return nil
	}
	return c[name]
}

// CalculateSnapshot reduces the config tree to flat totals. Missing sections
// contribute zero; the traversal never errors on leaf shape.
func CalculateSnapshot(cfg AccountConfig) Snapshot {
	var snap Snapshot

	// Cash accounts sit one level flatter than debt sections: name -> leaf.
	if cash, ok := cfg.section("cash_accounts").(map[string]any); ok {
		for _, v := range cash {
			switch acct := v.(type) {
			case map[string]any:
				if isLiquid(acct) {
					if n, ok := amountFrom(acct, "balance"); ok {
						snap.LiquidCash += n
					}
				}
			default:
				if n, ok := asFloat(v); ok {
					snap.LiquidCash += n
				}
			}
		}
	}

	for _, leaf := range leafItems(cfg.section("debt_balances"), "balance") {
		snap.TotalDebt += leaf.Amount
		if isMortgage(leaf) {
			snap.MortgageDebt += leaf.Amount
		} else {
			snap.ConsumerDebt += leaf.Amount
		}
	}

	if cards, ok := cfg.section("credit_cards").(map[string]any); ok {
		for _, v := range cards {
			switch card := v.(type) {
			case map[string]any:
				if n, ok := amountFrom(card, "balance"); ok {
					snap.TotalDebt += n
					snap.ConsumerDebt += n
				}
			default:
				if n, ok := asFloat(v); ok {
					snap.TotalDebt += n
					snap.ConsumerDebt += n
				}
			}
		}
	}

	for _, leaf := range leafItems(cfg.section("recurring_expenses"), "amount") {
		if metaString(leaf.Meta, "status") != "cancelled" {
			snap.MonthlyRecurring += leaf.Amount
		}
	}

	if income, ok := cfg.section("income").(map[string]any); ok {
		if n, ok := asFloat(income["monthly_total"]); ok {
			snap.MonthlyIncome = n
		}
	}

	snap.NetWorth = snap.LiquidCash - snap.TotalDebt

	snap.LiquidCash = round2(snap.LiquidCash)
	snap.TotalDebt = round2(snap.TotalDebt)
	snap.NetWorth = round2(snap.NetWorth)
	snap.MonthlyRecurring = round2(snap.MonthlyRecurring)
	snap.MonthlyIncome = round2(snap.MonthlyIncome)
	snap.ConsumerDebt = round2(snap.ConsumerDebt)
	snap.MortgageDebt = round2(snap.MortgageDebt)
	return snap
}

// isLiquid defaults to true when the flag is absent.
func isLiquid(acct map[string]any) bool {
	v, ok := acct["liquid"]
	if !ok {
		return true
	}
	b, ok := v.(bool)
	if !ok {
		return true
	}
	return b
}

func isMortgage(leaf LeafItem) bool {
	if strings.Contains(strings.ToLower(leaf.Group), "mortgage") {
		return true
	}
	return metaString(leaf.Meta, "type") == "mortgage"
}

func metaString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// CreditCardDebts extracts the card accounts that carry a balance, for the
// payoff simulator.
func CreditCardDebts(cfg AccountConfig) []DebtAccount {
	cards, ok := cfg.section("credit_cards").(map[string]any)
	if !ok {
		return nil
	}
	var debts []DebtAccount
	for id, v := range cards {
		card, ok := v.(map[string]any)
		if !ok {
			continue
		}
		balance, ok := amountFrom(card, "balance")
		if !ok || balance <= 0 {
			continue
		}
		apr, _ := asFloat(card["apr"])
		name := metaString(card, "name")
		if name == "" {
			name = id
		}
		debts = append(debts, DebtAccount{Name: name, Balance: balance, APR: apr})
	}
	return debts
}

// MonthlyDebtPayments sums the monthly_payment field across debt sections and
// credit cards. Cards without one fall back to their minimum payment.
func MonthlyDebtPayments(cfg AccountConfig) float64 {
	var total float64
	for _, leaf := range leafItems(cfg.section("debt_balances"), "balance") {
		if n, ok := asFloat(leaf.Meta["monthly_payment"]); ok {
			total += n
		}
	}
	if cards, ok := cfg.section("credit_cards").(map[string]any); ok {
		for _, v := range cards {
			card, ok := v.(map[string]any)
			if !ok {
				continue
			}
			if n, ok := asFloat(card["monthly_payment"]); ok {
				total += n
				continue
			}
			if balance, ok := amountFrom(card, "balance"); ok && balance > 0 {
				total += MinimumPayment(balance)
			}
		}
	}
	return round2(total)
}

// SavingsProfile reports monthly retirement/HSA savings and employer match.
// ok is false when the config carries no savings data at all, which callers
// must treat as "component unavailable" rather than zero.
func SavingsProfile(cfg AccountConfig) (monthly, match float64, ok bool) {
	retirement, hasRetirement := cfg.section("retirement").(map[string]any)
	savings, hasSavings := cfg.section("savings").(map[string]any)
	if !hasRetirement && !hasSavings {
		return 0, 0, false
	}
	if hasRetirement {
		if n, found := asFloat(retirement["monthly_contribution"]); found {
			monthly += n
		}
		if n, found := asFloat(retirement["employer_match"]); found {
			match = n
		}
	}
	if hasSavings {
		if n, found := asFloat(savings["hsa_monthly"]); found {
			monthly += n
		}
	}
	return monthly, match, true
}
