package parser

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Rs. 1,234.56 / INR 500
	amountRe = regexp.MustCompile(`(?i)(?:rs\.?|inr)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

	directionRe = regexp.MustCompile(`(?i)\b(credited|debited)\b`)

	// "account ending 1234", "A/c XX1234", "account no. ending with 1234"
	accountRe = regexp.MustCompile(`(?i)(?:account|a/c|acct)\s*(?:no\.?\s*)?(?:ending\s*)?(?:in\s+|with\s+)?[xX*]*(\d{4})\b`)

	// 12-01-2026, 12/1/26
	dateNumericRe = regexp.MustCompile(`\b(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})\b`)
	// 12 Jan, 2026
	dateNaturalRe = regexp.MustCompile(`(?i)\b(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*,?\s+\d{4})\b`)

	timeRe = regexp.MustCompile(`(?i)\bat\s+(\d{1,2}:\d{2}(?::\d{2})?)\b`)

	methodRe = regexp.MustCompile(`(?i)\b(upi|debit\s+card|credit\s+card|cash\s+deposit(?:\s+machine)?|net\s+banking|neft|imps|rtgs)\b`)

	referenceRe = regexp.MustCompile(`(?i)reference\s+(?:number|no\.?)\s*(?:is\s*)?[:\-]?\s*([A-Za-z0-9/_\-]+)`)

	// "to VPA merchant@upi MERCHANT NAME on ..."; the name is the run of
	// uppercase words after the handle, stopping at lowercase or punctuation.
	upiMerchantRe = regexp.MustCompile(`(?i:vpa)\s+(\S+@\S+)\s+([A-Z][A-Z0-9& \-]*)`)
	// Card notifications carry an uppercase merchant after "at".
	cardMerchantRe = regexp.MustCompile(`\b[aA]t\s+([A-Z][A-Z0-9& \-]{2,})`)
	// "deposited ... at <location> via Cash Deposit Machine"
	cashLocationRe = regexp.MustCompile(`(?i)\bat\s+([A-Za-z0-9 ,.\-]+?)\s+via\b`)

	balanceRe = regexp.MustCompile(`(?i)available\s+balance(?:\s+is)?\s*[:\-]?\s*(?:rs\.?|inr)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
)

// canonicalMethods maps the lowercased vocabulary match to its canonical
// spelling. "cash deposit machine" collapses to "Cash Deposit".
var canonicalMethods = map[string]string{
	"upi":                  MethodUPI,
	"debit card":           MethodDebitCard,
	"credit card":          MethodCreditCard,
	"cash deposit":         MethodCashDeposit,
	"cash deposit machine": MethodCashDeposit,
	"net banking":          MethodNetBanking,
	"neft":                 MethodNEFT,
	"imps":                 MethodIMPS,
	"rtgs":                 MethodRTGS,
}

// extractRule binds one field to its pattern and post-processor. Rules run
// independently in order; each takes the first match only. Adding support for
// a new notification format is a table change, not a control-flow change.
type extractRule struct {
	field string
	apply func(f *ExtractedFields, text string)
}

var extractRules = []extractRule{
	{"amount", func(f *ExtractedFields, text string) {
		f.Amount = firstMatch(amountRe, text)
	}},
	{"direction", func(f *ExtractedFields, text string) {
		if m, ok := firstMatch(directionRe, text).Get(); ok {
			if strings.EqualFold(m, "credited") {
				f.Direction = NewField(string(DirectionCredit))
			} else {
				f.Direction = NewField(string(DirectionDebit))
			}
		}
	}},
	{"account", func(f *ExtractedFields, text string) {
		f.AccountSuffix = firstMatch(accountRe, text)
	}},
	{"date", func(f *ExtractedFields, text string) {
		f.Date = firstMatch(dateNumericRe, text)
		if !f.Date.Present() {
			f.Date = firstMatch(dateNaturalRe, text)
		}
	}},
	{"time", func(f *ExtractedFields, text string) {
		f.Time = firstMatch(timeRe, text)
	}},
	{"method", func(f *ExtractedFields, text string) {
		if m, ok := firstMatch(methodRe, text).Get(); ok {
			key := whitespaceRe.ReplaceAllString(strings.ToLower(m), " ")
			f.Method = NewField(canonicalMethods[key])
			return
		}
		// Some UPI notifications never spell the method out but always
		// mention the rail somewhere.
		if strings.Contains(strings.ToLower(text), "upi") {
			f.Method = NewField(MethodUPI)
		}
	}},
	{"reference", func(f *ExtractedFields, text string) {
		f.Reference = firstMatch(referenceRe, text)
	}},
	// Merchant extraction is method-conditional, so this rule must follow
	// the method rule.
	{"merchant", func(f *ExtractedFields, text string) {
		switch f.Method.Or("") {
		case MethodUPI:
			if m := upiMerchantRe.FindStringSubmatch(text); m != nil {
				f.VPA = NewField(m[1])
				f.Merchant = NewField(strings.TrimSpace(m[2]))
			}
		case MethodDebitCard, MethodCreditCard:
			if m := cardMerchantRe.FindStringSubmatch(text); m != nil {
				f.Merchant = NewField(strings.TrimSpace(m[1]))
			}
		case MethodCashDeposit:
			if m := cashLocationRe.FindStringSubmatch(text); m != nil {
				f.Location = NewField(strings.TrimSpace(m[1]))
			}
		}
	}},
	{"balance", func(f *ExtractedFields, text string) {
		f.Balance = firstMatch(balanceRe, text)
	}},
}

// Extract runs the pattern table over raw notification text and returns
// whatever fields it could find. It never fails; a field it cannot find is
// simply absent.
func Extract(text string) ExtractedFields {
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	var fields ExtractedFields
	for _, rule := range extractRules {
		rule.apply(&fields, text)
	}
	return fields
}

func firstMatch(re *regexp.Regexp, text string) Field {
	if m := re.FindStringSubmatch(text); m != nil {
		return NewField(strings.TrimSpace(m[1]))
	}
	return Field{}
}
