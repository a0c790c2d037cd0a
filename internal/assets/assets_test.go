package assets_test

import (
	"testing"
	"time"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/internal/platform/tests"
)

func TestAssets(t *testing.T) {
	defer tests.Recover(t)

	t.Run("mint", mint)
	t.Run("transfer", transfer)
	t.Run("codeEncoding", codeEncoding)
}

func mint(t *testing.T) {
	test := tests.New()
	if test == nil {
		t.Fatalf("\t%s\tFailed to create test environment", tests.Failed)
	}
	defer test.TearDown()

	ctx := test.Context
	now := time.Now().UTC()
	holder := tests.MustGenerateKey(t)

	a, err := assets.Mint(ctx, test.MasterDB, holder.PublicKey(), now)
	if err != nil {
		t.Fatalf("\t%s\tFailed to mint asset : %v", tests.Failed, err)
	}

	b, err := assets.Mint(ctx, test.MasterDB, holder.PublicKey(), now)
	if err != nil {
		t.Fatalf("\t%s\tFailed to mint second asset : %v", tests.Failed, err)
	}
	if a.Code == b.Code {
		t.Fatalf("\t%s\tTwo mints produced the same code : %s", tests.Failed, a.Code.String())
	}

	fetched, err := assets.Fetch(ctx, test.MasterDB, &a.Code)
	if err != nil {
		t.Fatalf("\t%s\tFailed to fetch asset : %v", tests.Failed, err)
	}
	if !fetched.Holder.Equal(holder.PublicKey()) {
		t.Fatalf("\t%s\tWrong holder on fetched asset", tests.Failed)
	}

	unknown := assets.Code{}
	if _, err := assets.Fetch(ctx, test.MasterDB, &unknown); err != assets.ErrNotFound {
		t.Fatalf("\t%s\tExpected ErrNotFound, got %v", tests.Failed, err)
	}

	t.Logf("\t%s\tMinted assets with unique codes", tests.Success)
}

func transfer(t *testing.T) {
	test := tests.New()
	if test == nil {
		t.Fatalf("\t%s\tFailed to create test environment", tests.Failed)
	}
	defer test.TearDown()

	ctx := test.Context
	now := time.Now().UTC()
	holder := tests.MustGenerateKey(t)
	next := tests.MustGenerateKey(t)
	stranger := tests.MustGenerateKey(t)

	a, err := assets.Mint(ctx, test.MasterDB, holder.PublicKey(), now)
	if err != nil {
		t.Fatalf("\t%s\tFailed to mint asset : %v", tests.Failed, err)
	}

	if err := assets.Transfer(ctx, a, stranger.PublicKey(), next.PublicKey(), now); err != assets.ErrInvalidHolder {
		t.Fatalf("\t%s\tExpected ErrInvalidHolder, got %v", tests.Failed, err)
	}

	authority := stranger.PublicKey()
	a.FreezeAuthority = &authority
	if err := assets.Transfer(ctx, a, holder.PublicKey(), next.PublicKey(), now); err != assets.ErrFrozen {
		t.Fatalf("\t%s\tExpected ErrFrozen, got %v", tests.Failed, err)
	}
	a.FreezeAuthority = nil

	revision := a.Revision
	if err := assets.Transfer(ctx, a, holder.PublicKey(), next.PublicKey(), now); err != nil {
		t.Fatalf("\t%s\tFailed to transfer : %v", tests.Failed, err)
	}
	if !a.Holder.Equal(next.PublicKey()) {
		t.Fatalf("\t%s\tHolder not updated", tests.Failed)
	}
	if a.Revision != revision+1 {
		t.Fatalf("\t%s\tRevision not bumped : %d", tests.Failed, a.Revision)
	}

	t.Logf("\t%s\tTransfer enforced holder and lock checks", tests.Success)
}

func codeEncoding(t *testing.T) {
	test := tests.New()
	if test == nil {
		t.Fatalf("\t%s\tFailed to create test environment", tests.Failed)
	}
	defer test.TearDown()

	ctx := test.Context
	now := time.Now().UTC()
	holder := tests.MustGenerateKey(t)

	a, err := assets.Mint(ctx, test.MasterDB, holder.PublicKey(), now)
	if err != nil {
		t.Fatalf("\t%s\tFailed to mint asset : %v", tests.Failed, err)
	}

	parsed, err := assets.CodeFromString(a.Code.String())
	if err != nil {
		t.Fatalf("\t%s\tFailed to parse code : %v", tests.Failed, err)
	}
	if parsed != a.Code {
		t.Fatalf("\t%s\tParsed code does not match : %s", tests.Failed, parsed.String())
	}

	t.Logf("\t%s\tCode round-tripped through its string form", tests.Success)
}
