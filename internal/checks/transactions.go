package checks

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

// Transaction types whose decision method is constrained.
var (
	typesRequireDecision1    = map[int]bool{12: true, 22: true}
	typesRequireDecision1or2 = map[int]bool{31: true, 32: true, 33: true, 34: true, 35: true, 36: true}
)

// DuplicateRows flags groups of rows sharing the same date, time, security,
// quantity and price. The fund is deliberately not part of the key, so the
// same trade reported under two funds is caught as well. Runs over all
// rows, before any scope filtering.
func DuplicateRows(rows []models.TransactionRecord) []models.Exception {
	type dupKey struct {
		date, clock, security, quantity, price string
	}
	var order []dupKey
	buckets := make(map[dupKey][]models.TransactionRecord)
	for _, r := range rows {
		key := dupKey{security: r.SecurityID}
		if r.Date != nil {
			key.date = r.Date.Format("2006-01-02")
		}
		if r.Time != nil {
			key.clock = r.Time.String()
		}
		if r.Quantity != nil {
			key.quantity = strconv.FormatFloat(*r.Quantity, 'f', -1, 64)
		}
		if r.Price != nil {
			key.price = strconv.FormatFloat(*r.Price, 'f', -1, 64)
		}
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], r)
	}

	var exceptions []models.Exception
	for _, key := range order {
		group := buckets[key]
		if len(group) <= 1 {
			continue
		}
		groupKey := strings.Join([]string{key.date, key.clock, key.security, key.quantity, key.price}, "|")
		for _, r := range group {
			exceptions = append(exceptions, txnException(RuleDuplicates, "DUPLICATE_EXACT", r, groupKey))
		}
	}
	return numberSeq(exceptions)
}

// InterFundTransfers flags opposite-sign trades of the same security, day
// and absolute quantity. A buy in one fund mirrored by a sale in another is
// how units move between funds of the same manager, which the trustee must
// review. Same-sign repeats are not flagged here. Runs over all rows,
// before any scope filtering.
func InterFundTransfers(rows []models.TransactionRecord) []models.Exception {
	var uidOrder []string
	byUID := make(map[string][]models.TransactionRecord)
	for _, r := range rows {
		uid := r.GroupKey()
		if _, seen := byUID[uid]; !seen {
			uidOrder = append(uidOrder, uid)
		}
		byUID[uid] = append(byUID[uid], r)
	}

	var exceptions []models.Exception
	for _, uid := range uidOrder {
		var absOrder []float64
		absGroups := make(map[float64][]models.TransactionRecord)
		for _, r := range byUID[uid] {
			if r.Quantity == nil || *r.Quantity == 0 {
				continue
			}
			abs := math.Abs(*r.Quantity)
			if _, seen := absGroups[abs]; !seen {
				absOrder = append(absOrder, abs)
			}
			absGroups[abs] = append(absGroups[abs], r)
		}

		for _, abs := range absOrder {
			rs := absGroups[abs]
			var hasPositive, hasNegative bool
			for _, r := range rs {
				if *r.Quantity > 0 {
					hasPositive = true
				} else {
					hasNegative = true
				}
			}
			if !hasPositive || !hasNegative {
				continue
			}
			groupKey := fmt.Sprintf("%s|abs=%s", uid, strconv.FormatFloat(abs, 'f', -1, 64))
			for _, r := range rs {
				exceptions = append(exceptions, txnException(RuleDuplicates, "עסקה בין קרנות", r, groupKey))
			}
		}
	}
	return numberSeq(exceptions)
}

// TransactionDates requires every row to carry a trade date inside the
// report month.
func TransactionDates(rows []models.TransactionRecord, expected models.Period) []models.Exception {
	var exceptions []models.Exception
	for _, r := range rows {
		if r.Date == nil {
			exceptions = append(exceptions, txnException(RuleDates, "MISSING_TX_DATE", r, expected.String()))
			continue
		}
		if models.PeriodOf(*r.Date) != expected {
			exceptions = append(exceptions, txnException(RuleDates, "DATE_OUT_OF_REPORT_MONTH", r, expected.String()))
		}
	}
	return numberSeq(exceptions)
}

// DecisionMethods enforces the decision method each transaction type
// allows: types 12 and 22 must use method 1, types 31 through 36 must use
// method 1 or 2. Rows missing either value cannot be judged and are
// flagged as incomplete.
func DecisionMethods(rows []models.TransactionRecord) []models.Exception {
	var exceptions []models.Exception
	for _, r := range rows {
		if r.Type == nil || r.DecisionMethod == nil {
			exceptions = append(exceptions, txnException(RuleDecisionMethod, "MISSING_TYPE_OR_DECISION_METHOD", r, ""))
			continue
		}
		t, dm := *r.Type, *r.DecisionMethod
		if typesRequireDecision1[t] && dm != 1 {
			exceptions = append(exceptions, txnException(RuleDecisionMethod,
				fmt.Sprintf("TYPE_%d_REQUIRES_DECISION_1", t), r, fmt.Sprintf("type=%d", t)))
		}
		if typesRequireDecision1or2[t] && dm != 1 && dm != 2 {
			exceptions = append(exceptions, txnException(RuleDecisionMethod,
				fmt.Sprintf("TYPE_%d_REQUIRES_DECISION_1_OR_2", t), r, fmt.Sprintf("type=%d", t)))
		}
	}
	return numberSeq(exceptions)
}

// PriceTypeConsistency groups rows by security, date and time and demands a
// single price and a single type within each group. Rows missing any of the
// three key parts are skipped.
func PriceTypeConsistency(rows []models.TransactionRecord) []models.Exception {
	type slotKey struct {
		security, date, clock string
	}
	var order []slotKey
	groups := make(map[slotKey][]models.TransactionRecord)
	for _, r := range rows {
		if r.SecurityID == "" || r.Date == nil || r.Time == nil {
			continue
		}
		key := slotKey{r.SecurityID, r.Date.Format("2006-01-02"), r.Time.String()}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	var exceptions []models.Exception
	for _, key := range order {
		group := groups[key]
		if len(group) <= 1 {
			continue
		}

		priceSet := make(map[float64]bool)
		typeSet := make(map[int]bool)
		for _, r := range group {
			if r.Price != nil {
				priceSet[*r.Price] = true
			}
			if r.Type != nil {
				typeSet[*r.Type] = true
			}
		}

		var reasons []string
		if len(priceSet) > 1 {
			reasons = append(reasons, "מחירים שונים: "+formatFloatSet(priceSet))
		}
		if len(typeSet) > 1 {
			reasons = append(reasons, "סוגים שונים: "+formatIntSet(typeSet))
		}
		if len(reasons) == 0 {
			continue
		}

		reason := strings.Join(reasons, "; ")
		groupKey := key.security + "|" + key.date + "|" + key.clock
		for _, r := range group {
			exceptions = append(exceptions, txnException(RuleConsistency, reason, r, groupKey))
		}
	}
	return numberSeq(exceptions)
}

func formatFloatSet(set map[float64]bool) string {
	vals := make([]float64, 0, len(set))
	for v := range set {
		vals = append(vals, v)
	}
	sort.Float64s(vals)
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatIntSet(set map[int]bool) string {
	vals := make([]int, 0, len(set))
	for v := range set {
		vals = append(vals, v)
	}
	sort.Ints(vals)
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
