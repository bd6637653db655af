// README: Common money value object used across modules.
package types

import "strconv"

type Money struct {
	Amount   int64
	Currency string
}

func Rupees(amount int64) Money {
	return Money{Amount: amount, Currency: "INR"}
}

// FormatINR renders an amount with Indian digit grouping: the last three
// digits form one group, every group above that has two digits
// (1234567 -> "12,34,567").
func FormatINR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	if len(s) > 3 {
		head := s[:len(s)-3]
		out := s[len(s)-3:]
		for len(head) > 2 {
			out = head[len(head)-2:] + "," + out
			head = head[:len(head)-2]
		}
		s = head + "," + out
	}
	if neg {
		return "-" + s
	}
	return s
}

func (m Money) String() string {
	return "Rs. " + FormatINR(m.Amount)
}
