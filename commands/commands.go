package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/service"
)

const (
	flagUsername = "username"
	flagPassword = "password"
	flagName     = "name"
	flagBalance  = "balance"
)

// NewApp builds the non-interactive command surface over the engine.
// Each command authenticates with --username/--password first, except open.
func NewApp(svc *service.Service, out io.Writer) *cli.App {
	h := &handlers{svc: svc}

	return &cli.App{
		Name:      "ledger",
		Usage:     "flat-file bank ledger",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagUsername,
				Aliases: []string{"u"},
				Usage:   "account username",
				EnvVars: []string{"LEDGER_USERNAME"},
			},
			&cli.StringFlag{
				Name:    flagPassword,
				Aliases: []string{"p"},
				Usage:   "account password",
				EnvVars: []string{"LEDGER_PASSWORD"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "open",
				Usage: "open a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagName, Usage: "account holder name"},
					&cli.StringFlag{Name: flagBalance, Usage: "initial balance", Value: "0"},
				},
				Action: h.open,
			},
			{
				Name:   "balance",
				Usage:  "show the current balance",
				Action: h.authenticated(h.balance),
			},
			{
				Name:      "credit",
				Usage:     "add funds",
				ArgsUsage: "<amount>",
				Action:    h.authenticated(h.credit),
			},
			{
				Name:      "debit",
				Usage:     "withdraw funds",
				ArgsUsage: "<amount>",
				Action:    h.authenticated(h.debit),
			},
			{
				Name:      "transfer",
				Usage:     "move funds to another account",
				ArgsUsage: "<account-no> <amount>",
				Action:    h.authenticated(h.transfer),
			},
			{
				Name:      "passwd",
				Usage:     "change the password",
				ArgsUsage: "<new-password>",
				Action:    h.authenticated(h.passwd),
			},
			{
				Name:   "close",
				Usage:  "close a zero-balance account",
				Action: h.authenticated(h.close),
			},
			{
				Name:   "mini",
				Usage:  "show the most recent transactions",
				Action: h.authenticated(h.mini),
			},
			{
				Name:      "monthly",
				Usage:     "show a monthly statement",
				ArgsUsage: "<YYYY-MM>",
				Action:    h.authenticated(h.monthly),
			},
		},
	}
}

type handlers struct {
	svc *service.Service
}

type accountAction func(c *cli.Context, account *domain.Account) error

func (h *handlers) authenticated(next accountAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		username, password := c.String(flagUsername), c.String(flagPassword)
		if username == "" {
			return errors.New("--username is required")
		}

		account, err := h.svc.Account.Authenticate(c.Context, username, password)
		if err != nil {
			return err
		}
		return next(c, account)
	}
}

func (h *handlers) open(c *cli.Context) error {
	balance, err := parseAmount(c.String(flagBalance))
	if err != nil {
		return err
	}

	account, err := h.svc.Account.CreateAccount(c.Context, service.AccountCreate{
		Username:       c.String(flagUsername),
		Password:       c.String(flagPassword),
		Name:           c.String(flagName),
		InitialBalance: balance,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "account %d opened for %s, balance %s\n",
		account.Number, account.Username, domain.FormatAmount(account.Balance))
	return nil
}

func (h *handlers) balance(c *cli.Context, account *domain.Account) error {
	balance, err := h.svc.Account.Balance(c.Context, account)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%d %s\n", account.Number, domain.FormatAmount(balance))
	return nil
}

func (h *handlers) credit(c *cli.Context, account *domain.Account) error {
	amount, err := amountArg(c, 0)
	if err != nil {
		return err
	}
	if err := h.svc.Transaction.Credit(c.Context, account, amount); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "credited %s, balance %s\n", domain.FormatAmount(amount), domain.FormatAmount(account.Balance))
	return nil
}

func (h *handlers) debit(c *cli.Context, account *domain.Account) error {
	amount, err := amountArg(c, 0)
	if err != nil {
		return err
	}
	if err := h.svc.Transaction.Debit(c.Context, account, amount); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "debited %s, balance %s\n", domain.FormatAmount(amount), domain.FormatAmount(account.Balance))
	return nil
}

func (h *handlers) transfer(c *cli.Context, account *domain.Account) error {
	to, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return fmt.Errorf("account number %q: %w", c.Args().Get(0), err)
	}
	amount, err := amountArg(c, 1)
	if err != nil {
		return err
	}

	receiver, err := h.svc.Account.FindByAccountNo(c.Context, to)
	if err != nil {
		return err
	}
	if err := h.svc.Transaction.Transfer(c.Context, account, receiver, amount); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "transferred %s to %d, balance %s\n",
		domain.FormatAmount(amount), receiver.Number, domain.FormatAmount(account.Balance))
	return nil
}

func (h *handlers) passwd(c *cli.Context, account *domain.Account) error {
	if c.Args().Len() != 1 {
		return errors.New("expected <new-password>")
	}
	if err := h.svc.Account.ChangePassword(c.Context, account, c.String(flagPassword), c.Args().Get(0)); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "password changed")
	return nil
}

func (h *handlers) close(c *cli.Context, account *domain.Account) error {
	if err := h.svc.Account.CloseAccount(c.Context, account); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "account %d closed\n", account.Number)
	return nil
}

func (h *handlers) mini(c *cli.Context, account *domain.Account) error {
	records, err := h.svc.Statement.MiniStatement(c.Context, account)
	if errors.Is(err, domain.ErrNoHistory) {
		fmt.Fprintln(c.App.Writer, "no transactions yet")
		return nil
	}
	if err != nil {
		return err
	}

	return writeRecords(c.App.Writer, records)
}

func (h *handlers) monthly(c *cli.Context, account *domain.Account) error {
	period, err := time.ParseInLocation("2006-01", c.Args().Get(0), time.Local)
	if err != nil {
		return fmt.Errorf("%w: %q, want YYYY-MM", domain.ErrInvalidPeriod, c.Args().Get(0))
	}

	statement, err := h.svc.Statement.MonthlyStatement(c.Context, account, period.Month(), period.Year())
	if errors.Is(err, domain.ErrNoActivity) {
		fmt.Fprintln(c.App.Writer, "no activity this period")
		return nil
	}
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "statement %d %04d-%02d\n", statement.AccountNo, statement.Year, int(statement.Month))
	fmt.Fprintf(w, "opening balance %s\n", domain.FormatAmount(statement.OpeningBalance))
	if err := writeRecords(w, statement.Records); err != nil {
		return err
	}
	fmt.Fprintf(w, "total credits %s\n", domain.FormatAmount(statement.TotalCredits))
	fmt.Fprintf(w, "total debits %s\n", domain.FormatAmount(statement.TotalDebits))
	fmt.Fprintf(w, "closing balance %s\n", domain.FormatAmount(statement.ClosingBalance))
	return nil
}

func writeRecords(out io.Writer, records []domain.Transaction) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tAMOUNT\tBALANCE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Timestamp.Format(domain.TimestampLayout),
			r.Type,
			domain.FormatAmount(r.Amount),
			domain.FormatAmount(r.ResultingBalance))
	}
	return tw.Flush()
}

func amountArg(c *cli.Context, i int) (decimal.Decimal, error) {
	if c.Args().Len() <= i {
		return decimal.Decimal{}, fmt.Errorf("%w: missing amount", domain.ErrInvalidAmount)
	}
	return parseAmount(c.Args().Get(i))
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
	}
	return d, nil
}

