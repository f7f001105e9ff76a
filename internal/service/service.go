package service

import (
	contributionhandlers "github.com/milistaderegalos/payouts/internal/handlers/contributions"
	ledgerhandlers "github.com/milistaderegalos/payouts/internal/handlers/ledger"

	"github.com/milistaderegalos/payouts/internal/config"
	"github.com/milistaderegalos/payouts/internal/events"
	"github.com/milistaderegalos/payouts/internal/pg"
	"github.com/milistaderegalos/payouts/internal/repo"
	balanceservice "github.com/milistaderegalos/payouts/internal/service/balanceservice"
	contributionservice "github.com/milistaderegalos/payouts/internal/service/contributionservice"
	ledgerservice "github.com/milistaderegalos/payouts/internal/service/ledgerservice"
	payoutservice "github.com/milistaderegalos/payouts/internal/service/payoutservice"
)

type Services struct {
	LedgerService       ledgerhandlers.Service
	BalanceService      ledgerhandlers.Balance
	PayoutService       *payoutservice.Service
	ContributionService contributionhandlers.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, cache balanceservice.BalanceCache, gw payoutservice.Gateway, publisher events.Publisher, cfg *config.Config) *Services {
	ledgerService := ledgerservice.New(repo.LedgerRepo, cache)
	balanceService := balanceservice.New(ledgerService, cache, cfg.MinWithdrawal)
	payoutService := payoutservice.New(repo.PayoutRepo, ledgerService, balanceService, gw, publisher, txManager, cfg)
	contributionService := contributionservice.New(ledgerService, publisher, cfg)

	return &Services{
		LedgerService:       ledgerService,
		BalanceService:      balanceService,
		PayoutService:       payoutService,
		ContributionService: contributionService,
	}
}
