package marketplace_test

import (
	"testing"
	"time"

	"github.com/fairlane/marketplace/internal/marketplace"
	"github.com/fairlane/marketplace/internal/platform/tests"
)

func TestMarketplace(t *testing.T) {
	defer tests.Recover(t)

	t.Run("create", create)
	t.Run("feeTooHigh", feeTooHigh)
	t.Run("maxFee", maxFee)
	t.Run("doubleInit", doubleInit)
}

func create(t *testing.T) {
	test := tests.New()
	if test == nil {
		t.Fatalf("\t%s\tFailed to create test environment", tests.Failed)
	}
	defer test.TearDown()

	ctx := test.Context
	now := time.Now().UTC()

	m, err := marketplace.Create(ctx, test.MasterDB, test.AuthorityKey.PublicKey(), 5, now)
	if err != nil {
		t.Fatalf("\t%s\tFailed to create marketplace : %v", tests.Failed, err)
	}

	if !m.Authority.Equal(test.AuthorityKey.PublicKey()) {
		t.Fatalf("\t%s\tWrong authority : %s", tests.Failed, m.Authority.String())
	}
	if m.FeePercentage != 5 {
		t.Fatalf("\t%s\tWrong fee percentage : %d", tests.Failed, m.FeePercentage)
	}

	fetched, err := marketplace.Retrieve(ctx, test.MasterDB)
	if err != nil {
		t.Fatalf("\t%s\tFailed to retrieve marketplace : %v", tests.Failed, err)
	}
	if fetched.FeePercentage != 5 {
		t.Fatalf("\t%s\tWrong stored fee percentage : %d", tests.Failed, fetched.FeePercentage)
	}

	t.Logf("\t%s\tMarketplace created and retrieved", tests.Success)
}

func feeTooHigh(t *testing.T) {
	test := tests.New()
	if test == nil {
		t.Fatalf("\t%s\tFailed to create test environment", tests.Failed)
	}
	defer test.TearDown()

	ctx := test.Context
	now := time.Now().UTC()

	_, err := marketplace.Create(ctx, test.MasterDB, test.AuthorityKey.PublicKey(), 101, now)
	if err != marketplace.ErrInvalidFeePercentage {
		t.Fatalf("\t%s\tExpected ErrInvalidFeePercentage, got %v", tests.Failed, err)
	}

	if _, err := marketplace.Retrieve(ctx, test.MasterDB); err != marketplace.ErrNotFound {
		t.Fatalf("\t%s\tRejected init left a record behind : %v", tests.Failed, err)
	}

	t.Logf("\t%s\tFee above 100 rejected", tests.Success)
}

func maxFee(t *testing.T) {
	test := tests.New()
	if test == nil {
		t.Fatalf("\t%s\tFailed to create test environment", tests.Failed)
	}
	defer test.TearDown()

	ctx := test.Context
	now := time.Now().UTC()

	m, err := marketplace.Create(ctx, test.MasterDB, test.AuthorityKey.PublicKey(), 100, now)
	if err != nil {
		t.Fatalf("\t%s\tFee of exactly 100 should be accepted : %v", tests.Failed, err)
	}
	if m.FeePercentage != 100 {
		t.Fatalf("\t%s\tWrong fee percentage : %d", tests.Failed, m.FeePercentage)
	}

	t.Logf("\t%s\tFee of exactly 100 accepted", tests.Success)
}

func doubleInit(t *testing.T) {
	test := tests.New()
	if test == nil {
		t.Fatalf("\t%s\tFailed to create test environment", tests.Failed)
	}
	defer test.TearDown()

	ctx := test.Context
	now := time.Now().UTC()

	if _, err := marketplace.Create(ctx, test.MasterDB, test.AuthorityKey.PublicKey(), 2, now); err != nil {
		t.Fatalf("\t%s\tFailed to create marketplace : %v", tests.Failed, err)
	}

	other := tests.MustGenerateKey(t)
	_, err := marketplace.Create(ctx, test.MasterDB, other.PublicKey(), 10, now)
	if err != marketplace.ErrAlreadyInitialized {
		t.Fatalf("\t%s\tExpected ErrAlreadyInitialized, got %v", tests.Failed, err)
	}

	fetched, err := marketplace.Retrieve(ctx, test.MasterDB)
	if err != nil {
		t.Fatalf("\t%s\tFailed to retrieve marketplace : %v", tests.Failed, err)
	}
	if fetched.FeePercentage != 2 || !fetched.Authority.Equal(test.AuthorityKey.PublicKey()) {
		t.Fatalf("\t%s\tSecond init mutated the configuration", tests.Failed)
	}

	t.Logf("\t%s\tSecond initialization rejected", tests.Success)
}
