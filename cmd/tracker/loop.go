package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"

	"github.com/yatishb23/expense-tracker-frontend/internal/logger"
	"github.com/yatishb23/expense-tracker-frontend/internal/model/ledger"
	"github.com/yatishb23/expense-tracker-frontend/internal/model/session"
)

const prompt = "> "

const helpMessage = `Commands:
  signup <user> <password> <confirm>   create an account
  signin <user> <password>             sign in and load your expenses
  add <amount> <yyyy-mm-dd> <text...>  record an expense
  rm <id>                              remove an expense
  list                                 show all expenses
  total                                show the running total
  chart                                show the monthly chart
  report [week|month|year]             total for a period
  logout                               end the session
  quit                                 exit`

const (
	welcomeMessage    = "Expense Tracker. Type 'help' for commands."
	signInFirstNotice = "Sign in first."
	unknownNotice     = "I don't understand that command. Try 'help'."
)

var reportPeriods = map[string]func() time.Time{
	"":      func() time.Time { return time.Time{} },
	"week":  now.BeginningOfWeek,
	"month": now.BeginningOfMonth,
	"year":  now.BeginningOfYear,
}

type appConfig interface {
	CurrencySymbol() string
}

func runLoop(ctx context.Context, sessions *session.Manager, conf appConfig) {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	logger.Info("start reading commands")
	fmt.Println(welcomeMessage)
	fmt.Print(prompt)

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			sessions.Logout()
			return
		case line, ok := <-lines:
			if !ok {
				sessions.Logout()
				return
			}
			if done := handleLine(ctx, sessions, conf, line); done {
				sessions.Logout()
				return
			}
			fmt.Print(prompt)
		}
	}
}

func handleLine(ctx context.Context, sessions *session.Manager, conf appConfig, line string) (done bool) {
	cmd, arg := parseCommand(line)

	switch cmd {
	case "":
	case "help":
		fmt.Println(helpMessage)
	case "quit", "exit":
		return true
	case "signup":
		handleSignUp(ctx, sessions, arg)
	case "signin", "login":
		handleSignIn(ctx, sessions, arg)
	case "logout":
		sessions.Logout()
		fmt.Println("Signed out.")
	case "add":
		withStore(sessions, func(store *ledger.Store) { handleAdd(store, arg) })
	case "rm":
		withStore(sessions, func(store *ledger.Store) { handleRemove(store, arg) })
	case "list":
		withStore(sessions, func(store *ledger.Store) {
			renderTable(os.Stdout, store.Records(), conf.CurrencySymbol())
		})
	case "total":
		withStore(sessions, func(store *ledger.Store) {
			fmt.Printf("Total: %s%s\n", conf.CurrencySymbol(), store.TotalAmount().StringFixed(2))
		})
	case "chart":
		withStore(sessions, func(store *ledger.Store) {
			renderChart(os.Stdout, store.MonthlyBuckets())
		})
	case "report":
		withStore(sessions, func(store *ledger.Store) { handleReport(store, conf, arg) })
	default:
		fmt.Println(unknownNotice)
	}
	return false
}

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	split := strings.SplitN(text, " ", 2)

	if len(split) == 2 {
		return split[0], strings.TrimSpace(split[1])
	}
	return text, ""
}

func withStore(sessions *session.Manager, fn func(store *ledger.Store)) {
	store, ok := sessions.Active()
	if !ok {
		fmt.Println(signInFirstNotice)
		return
	}
	fn(store)
}

func handleSignIn(ctx context.Context, sessions *session.Manager, arg string) {
	args := strings.Fields(arg)
	if len(args) != 2 {
		fmt.Println("Usage: signin <user> <password>")
		return
	}

	store, err := sessions.SignIn(ctx, args[0], args[1])
	if err != nil {
		fmt.Println(signInFailureMessage(err))
		return
	}
	fmt.Printf("Signed in as %s. %d expense(s) loaded.\n", store.Username(), len(store.Records()))
}

func signInFailureMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		return "Incorrect username or password."
	case errors.Is(err, session.ErrMissingField):
		return "Both username and password are required."
	default:
		return "Failed to sign in. Please check your connection and try again."
	}
}

func handleSignUp(ctx context.Context, sessions *session.Manager, arg string) {
	args := strings.Fields(arg)
	if len(args) != 3 {
		fmt.Println("Usage: signup <user> <password> <confirm>")
		return
	}

	err := sessions.SignUp(ctx, args[0], args[1], args[2])
	switch {
	case err == nil:
		fmt.Println("Sign up successful! You can sign in now.")
	case errors.Is(err, session.ErrUserExists):
		fmt.Println("User already exists. Please sign in.")
	case errors.Is(err, session.ErrPasswordMismatch):
		fmt.Println("Passwords do not match.")
	case errors.Is(err, session.ErrMissingField):
		fmt.Println("All fields are required.")
	default:
		fmt.Println("Failed to sign up. Please check your connection and try again.")
	}
}

func handleAdd(store *ledger.Store, arg string) {
	args := strings.Fields(arg)
	if len(args) < 3 {
		fmt.Println("Usage: add <amount> <yyyy-mm-dd> <description>")
		return
	}

	amount, date := args[0], args[1]
	description := strings.Join(args[2:], " ")

	rec, err := store.Add(description, amount, date)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Added %q (%s).\n", rec.Description, rec.ID)
}

func handleRemove(store *ledger.Store, arg string) {
	if arg == "" {
		fmt.Println("Usage: rm <id>")
		return
	}
	if err := store.Remove(arg); errors.Is(err, ledger.ErrNotFound) {
		fmt.Printf("No expense with id %s.\n", arg)
		return
	}
	fmt.Println("Removed.")
}

func handleReport(store *ledger.Store, conf appConfig, arg string) {
	boundary, ok := reportPeriods[arg]
	if !ok {
		fmt.Println("Usage: report [week|month|year]")
		return
	}

	records := store.RecordsSince(boundary())
	if len(records) == 0 {
		fmt.Println("No expenses in this period.")
		return
	}
	fmt.Printf("%d expense(s), total %s%s\n",
		len(records), conf.CurrencySymbol(), store.TotalSince(boundary()).StringFixed(2))
}
