package repo

import (
	"github.com/milistaderegalos/payouts/internal/pg"
	ledgerrepo "github.com/milistaderegalos/payouts/internal/repo/ledger-repo"
	payoutrepo "github.com/milistaderegalos/payouts/internal/repo/payout-repo"
	"github.com/milistaderegalos/payouts/internal/service/ledgerservice"
	"github.com/milistaderegalos/payouts/internal/service/payoutservice"
)

type Repositories struct {
	LedgerRepo ledgerservice.Repo
	PayoutRepo payoutservice.PayoutRepo
}

func New(conn pg.Database) *Repositories {
	ledgerRepo := ledgerrepo.New(conn)
	payoutRepo := payoutrepo.New(conn)

	return &Repositories{
		LedgerRepo: ledgerRepo,
		PayoutRepo: payoutRepo,
	}
}
