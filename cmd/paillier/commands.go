package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/mpc-paillier/cmd/paillier/config"
	"github.com/mr-shifu/mpc-paillier/core/math/ring"
	"github.com/mr-shifu/mpc-paillier/core/shamir"
	"github.com/mr-shifu/mpc-paillier/internal/log"
	comm_keyopts "github.com/mr-shifu/mpc-paillier/pkg/common/keyopts"
	"github.com/mr-shifu/mpc-paillier/pkg/cryptosuite/sw/paillier"
	"github.com/mr-shifu/mpc-paillier/pkg/keyopts"
	"github.com/mr-shifu/mpc-paillier/pkg/keystore"
	"github.com/mr-shifu/mpc-paillier/pkg/vault"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/op/go-logging.v1"
)

const flagConfig = "config"

// env is the state shared by every subcommand once the config is loaded.
type env struct {
	cfg     *config.Config
	backend *log.Backend
	log     *logging.Logger
}

func newRootCmd() *cobra.Command {
	e := new(env)

	rootCmd := &cobra.Command{
		Use:           "paillier",
		Short:         "Paillier encryption and Shamir secret sharing",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close()
		},
	}
	rootCmd.PersistentFlags().StringP(flagConfig, "c", "paillier.toml", "path to the TOML config file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "encrypt <plaintext-hex>...",
			Short: "Encrypt plaintexts in [0, N) under fresh randomness",
			Args:  cobra.MinimumNArgs(1),
			RunE:  e.encrypt,
		},
		&cobra.Command{
			Use:   "decrypt <ciphertext-hex>...",
			Short: "Decrypt ciphertexts with the configured secret key",
			Args:  cobra.MinimumNArgs(1),
			RunE:  e.decrypt,
		},
		&cobra.Command{
			Use:   "share <secret-hex>",
			Short: "Split a field element into Parties shares, printed as id:value",
			Args:  cobra.ExactArgs(1),
			RunE:  e.share,
		},
		&cobra.Command{
			Use:   "combine <id:value>...",
			Short: "Recover a field element from Threshold+1 shares",
			Args:  cobra.MinimumNArgs(1),
			RunE:  e.combine,
		},
	)
	return rootCmd
}

func (e *env) load(cmd *cobra.Command) error {
	f, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return err
	}
	cfg, err := config.LoadFile(f)
	if err != nil {
		return errors.WithMessage(err, "failed to load config file")
	}
	var backend *log.Backend
	if cfg.Logging.File == "" && !cfg.Logging.Disable {
		backend, err = log.NewWriter(cmd.ErrOrStderr(), cfg.Logging.Level)
	} else {
		backend, err = log.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
	}
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.backend = backend
	e.log = backend.GetLogger("paillier")
	return nil
}

func (e *env) close() error {
	if e.backend == nil {
		return nil
	}
	return e.backend.Close()
}

// keyManager imports the configured key into a fresh in-memory keystore.
func (e *env) keyManager() (*paillier.PaillierKeyManagerImpl, comm_keyopts.Options, error) {
	pc := e.cfg.Paillier
	if pc == nil {
		return nil, nil, errors.New("config: [Paillier] section is missing")
	}
	n, err := pc.N()
	if err != nil {
		return nil, nil, err
	}
	d, err := pc.D()
	if err != nil {
		return nil, nil, err
	}

	keyID := pc.KeyID
	if keyID == "" {
		keyID = paillier.NewKeyID()
	}
	opts := keyopts.KeyOptions(keyID, pc.PartyID)

	ks := keystore.NewInMemoryKeystore(vault.NewInMemoryVault(), keyopts.NewInMemoryKeyOpts())
	mgr := paillier.NewPaillierKeyManager(ks, e.backend.GetLogger("keymanager"))
	if _, err := mgr.ImportKey(d, n, opts); err != nil {
		return nil, nil, err
	}
	return mgr, opts, nil
}

func (e *env) encrypt(cmd *cobra.Command, args []string) error {
	mgr, opts, err := e.keyManager()
	if err != nil {
		return err
	}
	for _, arg := range args {
		m, err := config.ParseHex(arg)
		if err != nil {
			return errors.WithMessagef(err, "invalid plaintext %q", arg)
		}
		c, err := mgr.Encrypt(m, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), encodeHex(c))
	}
	e.log.Noticef("encrypted %d plaintexts", len(args))
	return nil
}

func (e *env) decrypt(cmd *cobra.Command, args []string) error {
	mgr, opts, err := e.keyManager()
	if err != nil {
		return err
	}
	cts := make([]*saferith.Nat, len(args))
	for i, arg := range args {
		if cts[i], err = config.ParseHex(arg); err != nil {
			return errors.WithMessagef(err, "invalid ciphertext %q", arg)
		}
	}
	ms, err := mgr.DecryptBatch(cts, opts)
	if err != nil {
		return err
	}
	for _, m := range ms {
		fmt.Fprintln(cmd.OutOrStdout(), encodeHex(m))
	}
	e.log.Noticef("decrypted %d ciphertexts", len(args))
	return nil
}

func (e *env) share(cmd *cobra.Command, args []string) error {
	sc := e.cfg.Sharing
	if sc == nil {
		return errors.New("config: [Sharing] section is missing")
	}
	p, err := sc.Field()
	if err != nil {
		return err
	}
	x, err := config.ParseHex(args[0])
	if err != nil {
		return errors.WithMessagef(err, "invalid secret %q", args[0])
	}
	if _, _, lt := x.CmpMod(p); lt != 1 {
		return errors.New("secret must be smaller than FieldModulus")
	}

	ids := make([]shamir.ID, sc.Parties)
	for i := range ids {
		ids[i] = shamir.ID(i + 1)
	}
	shares, err := shamir.Deal(ring.NewZMod(x, p), sc.Threshold, ids, nil)
	if err != nil {
		return err
	}
	for _, s := range shares {
		fmt.Fprintf(cmd.OutOrStdout(), "%d:%s\n", s.ID, encodeHex(s.Value.Value()))
	}
	e.log.Noticef("dealt %d shares with threshold %d", sc.Parties, sc.Threshold)
	return nil
}

func (e *env) combine(cmd *cobra.Command, args []string) error {
	sc := e.cfg.Sharing
	if sc == nil {
		return errors.New("config: [Sharing] section is missing")
	}
	p, err := sc.Field()
	if err != nil {
		return err
	}
	if len(args) <= int(sc.Threshold) {
		return errors.Errorf("need at least %d shares, got %d", sc.Threshold+1, len(args))
	}

	shares := make([]shamir.Share, len(args))
	for i, arg := range args {
		if shares[i], err = parseShare(arg, p); err != nil {
			return err
		}
	}
	secret, err := shamir.Combine(shares)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), encodeHex(secret.Value()))
	return nil
}

func parseShare(s string, p *saferith.Modulus) (shamir.Share, error) {
	idPart, valuePart, ok := strings.Cut(s, ":")
	if !ok {
		return shamir.Share{}, errors.Errorf("invalid share %q, want id:value", s)
	}
	id, err := strconv.ParseUint(idPart, 10, 16)
	if err != nil {
		return shamir.Share{}, errors.WithMessagef(err, "invalid share id %q", idPart)
	}
	v, err := config.ParseHex(valuePart)
	if err != nil {
		return shamir.Share{}, errors.WithMessagef(err, "invalid share value %q", valuePart)
	}
	return shamir.Share{ID: shamir.ID(id), Value: ring.NewZMod(v, p)}, nil
}

// encodeHex prints x without leading zero bytes.
func encodeHex(x *saferith.Nat) string {
	b := x.Bytes()
	if len(b) == 0 {
		return "00"
	}
	i := 0
	for i < len(b)-1 && b[i] == 0 {
		i++
	}
	return hex.EncodeToString(b[i:])
}
