package fees

import (
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name          string
		price         uint64
		feePercentage uint8
		feeAmount     uint64
		netAmount     uint64
	}{
		{"fivePercent", 1000, 5, 50, 950},
		{"floorsDown", 999, 3, 29, 970},
		{"zeroFee", 1000, 0, 0, 1000},
		{"fullFee", 1000, 100, 1000, 0},
		{"oneUnit", 1, 99, 0, 1},
		{"largePrice", 18446744073709551, 7, 1291272085159668, 17155471988549883},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, net := Split(tt.price, tt.feePercentage)
			if fee != tt.feeAmount {
				t.Fatalf("Wrong fee amount : got %d, want %d", fee, tt.feeAmount)
			}
			if net != tt.netAmount {
				t.Fatalf("Wrong net amount : got %d, want %d", net, tt.netAmount)
			}
		})
	}
}

func TestSplitInvariant(t *testing.T) {
	prices := []uint64{1, 2, 99, 100, 101, 999, 1000, 65535, 1000000007}

	for _, price := range prices {
		for feePercentage := uint8(0); feePercentage <= 100; feePercentage++ {
			fee, net := Split(price, feePercentage)

			if fee+net != price {
				t.Fatalf("Split does not sum to price : %d + %d != %d (fee %d%%)",
					fee, net, price, feePercentage)
			}
			if fee != price*uint64(feePercentage)/100 {
				t.Fatalf("Wrong floor division : got %d for price %d at %d%%",
					fee, price, feePercentage)
			}
		}
	}
}
