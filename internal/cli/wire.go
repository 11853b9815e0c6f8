package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/casewise/intake/internal/casestore"
	"github.com/casewise/intake/internal/conversation"
	"github.com/casewise/intake/internal/eligibility"
	"github.com/casewise/intake/internal/model"
	"github.com/casewise/intake/internal/nlu"
	"github.com/casewise/intake/internal/oracle"
	"github.com/casewise/intake/internal/rank"
)

// engine bundles the shared pieces every command builds interviews from.
type engine struct {
	interp  *nlu.Interpreter
	ranker  *rank.Engine
	checker *eligibility.Checker
	store   *casestore.FileStore
}

// buildEngine wires the interpreter, scorer, eligibility checker, and case
// store from configuration.
func buildEngine(cfg *model.Config) (*engine, error) {
	provider, err := oracle.NewProvider(cfg.Oracle)
	if err != nil {
		return nil, fmt.Errorf("configuring oracle provider: %w", err)
	}
	if provider != nil {
		logger.Info("oracle provider configured",
			zap.String("provider", provider.Name()),
			zap.String("model", cfg.Oracle.Model))
	}

	criteria, err := eligibility.LoadCriteria(cfg.CriteriaFile)
	if err != nil {
		// missing rules mean every state is accepted, matching an empty table
		logger.Warn("could not load criteria file, proceeding without state rules",
			zap.String("file", cfg.CriteriaFile),
			zap.Error(err))
		criteria = &model.CriteriaTable{}
	}

	store, err := casestore.NewFileStore(cfg.Store.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening case store: %w", err)
	}

	return &engine{
		interp:  nlu.NewInterpreter(provider, cfg.Oracle, logger),
		ranker:  rank.NewEngine(logger),
		checker: eligibility.NewChecker(criteria),
		store:   store,
	}, nil
}

// newMachine starts a fresh interview.
func (e *engine) newMachine() *conversation.Machine {
	return conversation.NewMachine(e.interp, e.ranker, e.checker, e.store, logger)
}
