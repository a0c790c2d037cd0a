package listing_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/internal/listing"
	"github.com/fairlane/marketplace/internal/metadata"
	"github.com/fairlane/marketplace/internal/platform/tests"

	"github.com/google/go-cmp/cmp"
)

func TestListings(t *testing.T) {
	defer tests.Recover(t)

	t.Run("create", create)
	t.Run("validation", validation)
	t.Run("descriptor", descriptor)
	t.Run("updatePrice", updatePrice)
}

func create(t *testing.T) {
	test := tests.New()
	if test == nil {
		t.Fatalf("\t%s\tFailed to create test environment", tests.Failed)
	}
	defer test.TearDown()

	ctx := test.Context
	now := time.Now().UTC()
	vendor := tests.MustGenerateKey(t)

	l, err := listing.Create(ctx, test.MasterDB, &listing.NewListing{
		Vendor:      vendor.PublicKey(),
		Name:        "Logo design",
		Description: "One logo, two revisions",
		Price:       5000,
	}, now)
	if err != nil {
		t.Fatalf("\t%s\tFailed to create listing : %v", tests.Failed, err)
	}

	// The backing asset must be held by the vendor.
	a, err := assets.Fetch(ctx, test.MasterDB, &l.AssetCode)
	if err != nil {
		t.Fatalf("\t%s\tFailed to fetch minted asset : %v", tests.Failed, err)
	}
	if !a.Holder.Equal(vendor.PublicKey()) {
		t.Fatalf("\t%s\tAsset not held by vendor : %s", tests.Failed, a.Holder.String())
	}
	if a.FreezeAuthority != nil || a.HolderLockAuthority != nil {
		t.Fatalf("\t%s\tFreshly minted asset must not be locked", tests.Failed)
	}

	fetched, err := listing.Fetch(ctx, test.MasterDB, &l.AssetCode)
	if err != nil {
		t.Fatalf("\t%s\tFailed to fetch listing : %v", tests.Failed, err)
	}
	if diff := cmp.Diff(l, fetched); diff != "" {
		t.Fatalf("\t%s\tFetched listing differs : %s", tests.Failed, diff)
	}

	t.Logf("\t%s\tListing created with vendor-held asset", tests.Success)
}

func validation(t *testing.T) {
	test := tests.New()
	if test == nil {
		t.Fatalf("\t%s\tFailed to create test environment", tests.Failed)
	}
	defer test.TearDown()

	ctx := test.Context
	now := time.Now().UTC()
	vendor := tests.MustGenerateKey(t)

	cases := []struct {
		name string
		nu   listing.NewListing
		err  error
	}{
		{"zeroPrice", listing.NewListing{
			Vendor: vendor.PublicKey(), Name: "a", Description: "b", Price: 0,
		}, listing.ErrInvalidPrice},
		{"emptyName", listing.NewListing{
			Vendor: vendor.PublicKey(), Name: "", Description: "b", Price: 1,
		}, listing.ErrEmptyName},
		{"emptyDescription", listing.NewListing{
			Vendor: vendor.PublicKey(), Name: "a", Description: "", Price: 1,
		}, listing.ErrEmptyDescription},
		{"allInvalid", listing.NewListing{
			Vendor: vendor.PublicKey(), Name: "", Description: "", Price: 0,
		}, listing.ErrEmptyName},
		{"nameTooLong", listing.NewListing{
			Vendor: vendor.PublicKey(), Name: strings.Repeat("x", 201),
			Description: "b", Price: 1,
		}, listing.ErrNameTooLong},
		{"descriptionTooLong", listing.NewListing{
			Vendor: vendor.PublicKey(), Name: "a",
			Description: strings.Repeat("x", 401), Price: 1,
		}, listing.ErrDescriptionTooLong},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			nu := tt.nu
			if _, err := listing.Create(ctx, test.MasterDB, &nu, now); err != tt.err {
				t.Fatalf("\t%s\tExpected %v, got %v", tests.Failed, tt.err, err)
			}
		})
	}

	t.Logf("\t%s\tListing validation rejected bad input", tests.Success)
}

func descriptor(t *testing.T) {
	test := tests.New()
	if test == nil {
		t.Fatalf("\t%s\tFailed to create test environment", tests.Failed)
	}
	defer test.TearDown()

	ctx := test.Context
	now := time.Now().UTC()
	vendor := tests.MustGenerateKey(t)

	l, err := listing.Create(ctx, test.MasterDB, &listing.NewListing{
		Vendor:      vendor.PublicKey(),
		Name:        "Audit",
		Description: "Security review",
		Price:       999,
		IsSoulbound: true,
	}, now)
	if err != nil {
		t.Fatalf("\t%s\tFailed to create listing : %v", tests.Failed, err)
	}

	d, err := metadata.Fetch(ctx, test.MasterDB, &l.AssetCode)
	if err != nil {
		t.Fatalf("\t%s\tFailed to fetch descriptor : %v", tests.Failed, err)
	}

	if d.Symbol != metadata.Symbol {
		t.Fatalf("\t%s\tWrong descriptor symbol : %s", tests.Failed, d.Symbol)
	}
	want := `data:application/json,{"name":"Audit","description":"Security review","price":999,"is_soulbound":true}`
	if d.URI != want {
		t.Fatalf("\t%s\tWrong descriptor URI : %s", tests.Failed, d.URI)
	}

	t.Logf("\t%s\tDescriptor written alongside the listing", tests.Success)
}

func updatePrice(t *testing.T) {
	test := tests.New()
	if test == nil {
		t.Fatalf("\t%s\tFailed to create test environment", tests.Failed)
	}
	defer test.TearDown()

	ctx := test.Context
	now := time.Now().UTC()
	vendor := tests.MustGenerateKey(t)
	stranger := tests.MustGenerateKey(t)

	l, err := listing.Create(ctx, test.MasterDB, &listing.NewListing{
		Vendor:      vendor.PublicKey(),
		Name:        "Translation",
		Description: "Up to 2000 words",
		Price:       1200,
	}, now)
	if err != nil {
		t.Fatalf("\t%s\tFailed to create listing : %v", tests.Failed, err)
	}

	if err := listing.UpdatePrice(ctx, test.MasterDB, l, 1500, stranger.PublicKey(), now); err != listing.ErrInvalidOwner {
		t.Fatalf("\t%s\tExpected ErrInvalidOwner, got %v", tests.Failed, err)
	}
	if err := listing.UpdatePrice(ctx, test.MasterDB, l, 0, vendor.PublicKey(), now); err != listing.ErrInvalidPrice {
		t.Fatalf("\t%s\tExpected ErrInvalidPrice, got %v", tests.Failed, err)
	}

	if err := listing.UpdatePrice(ctx, test.MasterDB, l, 1500, vendor.PublicKey(), now); err != nil {
		t.Fatalf("\t%s\tFailed to update price : %v", tests.Failed, err)
	}

	fetched, err := listing.Fetch(ctx, test.MasterDB, &l.AssetCode)
	if err != nil {
		t.Fatalf("\t%s\tFailed to fetch listing : %v", tests.Failed, err)
	}
	if fetched.Price != 1500 {
		t.Fatalf("\t%s\tWrong stored price : %d", tests.Failed, fetched.Price)
	}

	t.Logf("\t%s\tPrice update gated on ownership", tests.Success)
}
