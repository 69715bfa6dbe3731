package parts

import "fmt"

// DerivedRackLocator synthesizes a rack location from the part number
// alone. It is a display placeholder carried over until the warehouse
// module exposes real rack assignments; the authoritative value, when
// present on a payload, always wins over this derivation.
type DerivedRackLocator struct{}

// Rack returns a deterministic pseudo-location such as "4C".
func (DerivedRackLocator) Rack(partNumber string) string {
	if partNumber == "" {
		return ""
	}
	sum := 0
	for _, c := range partNumber {
		sum += int(c)
	}
	return fmt.Sprintf("%d%c", sum%10+1, rune('A'+sum%5))
}
