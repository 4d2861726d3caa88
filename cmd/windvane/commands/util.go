package commands

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	dbm "github.com/tendermint/tm-db"

	"github.com/windvane/windvane/attestation"
	"github.com/windvane/windvane/client"
	fedhttp "github.com/windvane/windvane/federation/http"
	"github.com/windvane/windvane/keychain"
	wvos "github.com/windvane/windvane/libs/os"
	"github.com/windvane/windvane/store"
	"github.com/windvane/windvane/types"
)

// loadKeychain reads the seed file and derives the wallet keychain from it.
func loadKeychain() (*keychain.Keychain, error) {
	seedFile := config.SeedFile()
	raw, err := wvos.ReadFile(seedFile)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s (did you run `windvane init`?): %w", seedFile, err)
	}
	seed, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("seed file %s is not hex: %w", seedFile, err)
	}
	return keychain.New(seed)
}

// loadClient assembles a client from the environment configuration. The
// returned closer releases the client and its database.
func loadClient() (*client.Client, func(), error) {
	keys, err := loadKeychain()
	if err != nil {
		return nil, nil, err
	}

	db, err := dbm.NewDB("windvane", dbm.BackendType(config.DBBackend), config.DBDir())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	st := store.New(db)

	fed, err := fedhttp.NewWithTimeout(config.Federation.Address, config.Federation.Timeout)
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("connecting to federation: %w", err)
	}
	fed.SetPollInterval(config.Federation.PollInterval)

	options := []client.Option{
		client.Logger(logger),
		client.SyncConcurrency(config.Sync.Concurrency),
	}
	if path := config.Attestation.EventsFilePath(config.RootDir); path != "" {
		options = append(options, client.AttestationSource(attestation.FileSource{Path: path}))
	}
	if config.Instrumentation.Prometheus {
		options = append(options, client.WithMetrics(
			client.PrometheusMetrics(config.Instrumentation.Namespace)))
	}

	c := client.New(st, fed, keys, options...)
	closer := func() {
		if err := c.Close(); err != nil {
			logger.Error("failed to close client", "err", err)
		}
		if err := st.Close(); err != nil {
			logger.Error("failed to close store", "err", err)
		}
	}
	return c, closer, nil
}

// commandContext derives a context from the command that is canceled on
// SIGTERM or SIGINT.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(cmd.Context())

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-c
		cancel()
	}()

	return ctx, cancel
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// parseOrderFilter turns the optional --market and --outcome flag values
// into the pointer filters the client takes. Empty strings select
// everything.
func parseOrderFilter(marketFlag, outcomeFlag string) (*types.OutPoint, *types.Outcome, error) {
	var market *types.OutPoint
	if marketFlag != "" {
		ref, err := types.ParseOutPoint(marketFlag)
		if err != nil {
			return nil, nil, err
		}
		market = &ref
	}

	var outcome *types.Outcome
	if outcomeFlag != "" {
		o, err := types.ParseOutcome(outcomeFlag)
		if err != nil {
			return nil, nil, err
		}
		outcome = &o
	}

	if market == nil && outcome != nil {
		return nil, nil, fmt.Errorf("--outcome requires --market")
	}
	return market, outcome, nil
}
