package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-task-manager/internal/adapter"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

const usage = `usage: task-client [flags] <command> [args]

commands:
  signup <name> <email> <password> [age]
  login <email> <password>
  logout
  logout-all
  me
  tasks [-completed true|false] [-sort field:asc|desc] [-limit n] [-skip n]
  add <description>
  done <task-id>
  rm <task-id>
  version
`

type command func(ctx context.Context, args []string) error

// App runs one client command per invocation.
type App struct {
	server adapter.ServerAdapter
	tokens TokenStore
	out    io.Writer

	commands map[string]command

	logger *logger.Logger
}

// NewApp constructs an [App]. A previously saved token is loaded into server.
func NewApp(server adapter.ServerAdapter, tokens TokenStore, out io.Writer, logger *logger.Logger) (*App, error) {
	token, err := tokens.Load()
	if err != nil {
		return nil, err
	}
	server.SetToken(token)

	a := &App{server: server, tokens: tokens, out: out, logger: logger}
	a.commands = map[string]command{
		"signup":     a.signup,
		"login":      a.login,
		"logout":     a.logout,
		"logout-all": a.logoutAll,
		"me":         a.me,
		"tasks":      a.tasks,
		"add":        a.add,
		"done":       a.done,
		"rm":         a.rm,
		"version":    a.version,
	}

	return a, nil
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrNoCommand
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}

	err := cmd(ctx, args[1:])
	if errors.Is(err, adapter.ErrUnauthorized) {
		// the saved session is no longer accepted by the server
		if clearErr := a.tokens.Clear(); clearErr != nil {
			a.logger.Warn().Err(clearErr).Msg("failed to clear stale token")
		}
		a.server.SetToken("")
	}

	return err
}

func (a *App) signup(ctx context.Context, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return fmt.Errorf("%w: signup <name> <email> <password> [age]", ErrUsage)
	}

	req := models.SignupRequest{Name: args[0], Email: args[1], Password: args[2]}
	if len(args) == 4 {
		age, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("%w: age must be a number", ErrUsage)
		}
		req.Age = &age
	}

	auth, err := a.server.Signup(ctx, req)
	if err != nil {
		return err
	}

	return a.openSession(auth)
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: login <email> <password>", ErrUsage)
	}

	auth, err := a.server.Login(ctx, models.Credentials{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}

	return a.openSession(auth)
}

func (a *App) openSession(auth models.AuthResponse) error {
	if err := a.tokens.Save(auth.Token); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "signed in as %s <%s>\n", auth.User.Name, auth.User.Email)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.server.Logout(ctx); err != nil {
		return err
	}
	return a.closeSession()
}

func (a *App) logoutAll(ctx context.Context, _ []string) error {
	if err := a.server.LogoutAll(ctx); err != nil {
		return err
	}
	return a.closeSession()
}

func (a *App) closeSession() error {
	if err := a.tokens.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "signed out")
	return nil
}

func (a *App) me(ctx context.Context, _ []string) error {
	user, err := a.server.Me(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%s\n", user.ID)
	fmt.Fprintf(w, "name\t%s\n", user.Name)
	fmt.Fprintf(w, "email\t%s\n", user.Email)
	fmt.Fprintf(w, "age\t%d\n", user.Age)
	return w.Flush()
}

func (a *App) tasks(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	completed := fs.String("completed", "", "filter by completion (true|false)")
	sortBy := fs.String("sort", "", "sort expression field:asc|desc")
	limit := fs.Uint64("limit", 0, "max number of tasks")
	skip := fs.Uint64("skip", 0, "number of tasks to skip")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	filter := adapter.TaskFilter{SortBy: *sortBy, Limit: *limit, Skip: *skip}
	if *completed != "" {
		value, err := strconv.ParseBool(*completed)
		if err != nil {
			return fmt.Errorf("%w: -completed must be true or false", ErrUsage)
		}
		filter.Completed = &value
	}

	tasks, err := a.server.ListTasks(ctx, filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tDESCRIPTION")
	for _, task := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\n", task.ID, doneMark(task.Completed), task.Description)
	}
	return w.Flush()
}

func (a *App) add(ctx context.Context, args []string) error {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		return fmt.Errorf("%w: add <description>", ErrUsage)
	}

	task, err := a.server.CreateTask(ctx, models.NewTask{Description: description})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "created %s\n", task.ID)
	return nil
}

func (a *App) done(ctx context.Context, args []string) error {
	id, err := taskIDArg("done", args)
	if err != nil {
		return err
	}

	completed := true
	task, err := a.server.UpdateTask(ctx, id, models.TaskUpdate{Completed: &completed})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "completed %s\n", task.ID)
	return nil
}

func (a *App) rm(ctx context.Context, args []string) error {
	id, err := taskIDArg("rm", args)
	if err != nil {
		return err
	}

	task, err := a.server.DeleteTask(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "deleted %s\n", task.ID)
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.server.Version(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "server version: %s\n", v)
	return nil
}

func taskIDArg(cmd string, args []string) (uuid.UUID, error) {
	if len(args) != 1 {
		return uuid.Nil, fmt.Errorf("%w: %s <task-id>", ErrUsage, cmd)
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed task id %q", ErrUsage, args[0])
	}
	return id, nil
}

func doneMark(completed bool) string {
	if completed {
		return "x"
	}
	return " "
}
