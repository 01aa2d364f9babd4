// adminctl is a terminal front end for the commerce admin console API.
// It keeps a persisted session (file or Redis) and mirrors the remote
// company, user, proposal and group collections per invocation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/term"

	"commerce-admin-console/client/internal/api"
	"commerce-admin-console/client/internal/collection"
	"commerce-admin-console/client/internal/company"
	"commerce-admin-console/client/internal/config"
	"commerce-admin-console/client/internal/group"
	"commerce-admin-console/client/internal/logging"
	"commerce-admin-console/client/internal/media"
	"commerce-admin-console/client/internal/parameter"
	"commerce-admin-console/client/internal/proposal"
	"commerce-admin-console/client/internal/session/service"
	"commerce-admin-console/client/internal/session/store"
	"commerce-admin-console/client/internal/user"
)

const usage = `usage: adminctl <command> [args]

session:
  login <email>             sign in (password read from terminal)
  logout                    sign out and wipe the stored session
  whoami                    print the signed-in identity
  recover <email>           request a password recovery mail

resources (company | user | proposal | group):
  <resource> list [-page N] [-size N] [-sort FIELD] [-dir asc|desc] [-filter S]
  <resource> search <text>
  <resource> delete <id>

media:
  avatar <file>             upload an avatar image
  upload <file> [-title S] [-type S] [-company ID]
`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logger.Sync()

	var sessions store.Store
	switch cfg.SessionStore {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		sessions = store.NewRedisStore(rdb, cfg.RedisKeyPrefix)
	default:
		sessions, err = store.NewFileStore(cfg.SessionFile)
		if err != nil {
			log.Fatalf("session store: %v", err)
		}
	}

	// The auth endpoints take no bearer token, so the manager gets its own
	// unauthenticated client; the manager then serves as the token source
	// for everything else.
	authClient := api.New(cfg.APIBaseURL, cfg.Timeout(), nil, logger)
	manager := service.NewManager(authClient, sessions, nil, logger)
	client := api.New(cfg.APIBaseURL, cfg.Timeout(), manager, logger)

	app := &app{
		cfg:       cfg,
		manager:   manager,
		media:     media.NewService(client, logger),
		params:    parameter.NewService(client),
		client:    client,
		companies: nil,
		users:     user.NewService(client, logger),
		proposals: nil,
		groups:    group.NewService(client, logger),
	}
	app.companies = company.NewService(client, app.params, logger)
	app.proposals = proposal.NewService(client, app.params, logger)

	if err := app.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("adminctl: %v", err)
	}
}

type app struct {
	cfg       *config.Config
	manager   *service.Manager
	client    *api.Client
	params    *parameter.Service
	media     *media.Service
	companies *company.Service
	users     *user.Service
	proposals *proposal.Service
	groups    *group.Service
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.manager.SignOut(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "recover":
		if len(args) != 1 {
			return fmt.Errorf("usage: adminctl recover <email>")
		}
		return a.manager.ForgotPassword(ctx, args[0])
	case "avatar":
		return a.avatar(ctx, args)
	case "upload":
		return a.upload(ctx, args)
	case "company":
		return a.resource(ctx, args, companyCommands{a.companies})
	case "user":
		return a.resource(ctx, args, userCommands{a.users})
	case "proposal":
		return a.resource(ctx, args, proposalCommands{a.proposals})
	case "group":
		return a.resource(ctx, args, groupCommands{a.groups})
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: adminctl login <email>")
	}
	fmt.Fprint(os.Stderr, "password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	identity, err := a.manager.SignIn(ctx, args[0], string(password))
	if err != nil {
		return err
	}
	if identity != nil {
		fmt.Printf("signed in as %s (%s)\n", identity.Name, identity.Email)
	} else {
		fmt.Println("signed in")
	}
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if !a.manager.CheckSession(ctx) {
		return fmt.Errorf("not signed in")
	}
	identity := a.manager.Identity()
	if identity == nil {
		fmt.Println("signed in (identity unavailable)")
		return nil
	}
	fmt.Printf("%s <%s>\nuser: %s\ncompany: %s\nrole: %s\n",
		identity.Name, identity.Email, identity.UserID, identity.CompanyID, identity.Role)
	return nil
}

func (a *app) avatar(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: adminctl avatar <file>")
	}
	if !a.manager.CheckSession(ctx) {
		return fmt.Errorf("not signed in")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	m, err := a.media.UploadAvatar(ctx, f.Name(), f)
	if err != nil {
		return err
	}
	fmt.Printf("avatar uploaded: %s\n", m.URL)
	return nil
}

func (a *app) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	title := fs.String("title", "", "attachment title")
	mediaType := fs.String("type", "DOCUMENT", "attachment type")
	companyID := fs.String("company", "", "owning company id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: adminctl upload <file> [flags]")
	}
	if !a.manager.CheckSession(ctx) {
		return fmt.Errorf("not signed in")
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()
	m, err := a.media.UploadMedia(ctx, f.Name(), f, media.Upload{
		Title:     *title,
		Type:      *mediaType,
		CompanyID: *companyID,
	})
	if err != nil {
		return err
	}
	fmt.Printf("uploaded: %s\n", m.ID)
	return nil
}

// resourceCommands adapts one cached collection service to the shared
// list/search/delete verbs.
type resourceCommands interface {
	list(ctx context.Context, q collection.Query) ([]row, collection.Pagination, error)
	search(ctx context.Context, text string) ([]row, error)
	delete(ctx context.Context, id string) error
}

type row struct{ id, label string }

func (a *app) resource(ctx context.Context, args []string, cmds resourceCommands) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: adminctl <resource> list|search|delete")
	}
	if !a.manager.CheckSession(ctx) {
		return fmt.Errorf("not signed in")
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		page := fs.Int("page", 0, "page number")
		size := fs.Int("size", a.cfg.PageSize, "page size")
		sortBy := fs.String("sort", "created_at", "sort field")
		dir := fs.String("dir", "desc", "sort direction")
		filter := fs.String("filter", "", "server-side filter")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		rows, pagination, err := cmds.list(ctx, collection.Query{
			Page: *page, Size: *size, SortField: *sortBy, SortDir: *dir, Filter: *filter,
		})
		if err != nil {
			return err
		}
		for _, r := range rows {
			fmt.Printf("%-36s  %s\n", r.id, r.label)
		}
		fmt.Printf("page %d of %d (%d total)\n", *page+1, pagination.TotalPages, pagination.TotalSize)
		return nil
	case "search":
		if len(args) != 2 {
			return fmt.Errorf("usage: adminctl <resource> search <text>")
		}
		rows, err := cmds.search(ctx, args[1])
		if err != nil {
			return err
		}
		for _, r := range rows {
			fmt.Printf("%-36s  %s\n", r.id, r.label)
		}
		return nil
	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: adminctl <resource> delete <id>")
		}
		// Each invocation starts with an empty mirror, and deletes reduce
		// against a loaded one. Prime it first.
		if _, _, err := cmds.list(ctx, collection.Query{
			Size: a.cfg.PageSize, SortField: "created_at", SortDir: "desc",
		}); err != nil {
			return err
		}
		return cmds.delete(ctx, args[1])
	default:
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

type companyCommands struct{ svc *company.Service }

func (c companyCommands) list(ctx context.Context, q collection.Query) ([]row, collection.Pagination, error) {
	state, err := c.svc.List(ctx, q)
	if err != nil {
		return nil, collection.Pagination{}, err
	}
	rows := make([]row, 0, len(state.Items))
	for _, it := range state.Items {
		rows = append(rows, row{it.ID, it.CardName})
	}
	return rows, state.Pagination, nil
}

func (c companyCommands) search(ctx context.Context, text string) ([]row, error) {
	items, err := c.svc.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	rows := make([]row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row{it.ID, it.CardName})
	}
	return rows, nil
}

func (c companyCommands) delete(ctx context.Context, id string) error {
	return c.svc.Delete(ctx, id)
}

type userCommands struct{ svc *user.Service }

func (c userCommands) list(ctx context.Context, q collection.Query) ([]row, collection.Pagination, error) {
	state, err := c.svc.List(ctx, q)
	if err != nil {
		return nil, collection.Pagination{}, err
	}
	rows := make([]row, 0, len(state.Items))
	for _, it := range state.Items {
		rows = append(rows, row{it.ID, it.Email})
	}
	return rows, state.Pagination, nil
}

func (c userCommands) search(ctx context.Context, text string) ([]row, error) {
	items, err := c.svc.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	rows := make([]row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row{it.ID, it.Email})
	}
	return rows, nil
}

func (c userCommands) delete(ctx context.Context, id string) error {
	return c.svc.Delete(ctx, id)
}

type proposalCommands struct{ svc *proposal.Service }

func (c proposalCommands) list(ctx context.Context, q collection.Query) ([]row, collection.Pagination, error) {
	state, err := c.svc.List(ctx, q)
	if err != nil {
		return nil, collection.Pagination{}, err
	}
	rows := make([]row, 0, len(state.Items))
	for _, it := range state.Items {
		rows = append(rows, row{it.ID, it.Title})
	}
	return rows, state.Pagination, nil
}

func (c proposalCommands) search(ctx context.Context, text string) ([]row, error) {
	items, err := c.svc.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	rows := make([]row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row{it.ID, it.Title})
	}
	return rows, nil
}

func (c proposalCommands) delete(ctx context.Context, id string) error {
	return c.svc.Delete(ctx, id)
}

type groupCommands struct{ svc *group.Service }

func (c groupCommands) list(ctx context.Context, q collection.Query) ([]row, collection.Pagination, error) {
	state, err := c.svc.List(ctx, q)
	if err != nil {
		return nil, collection.Pagination{}, err
	}
	rows := make([]row, 0, len(state.Items))
	for _, it := range state.Items {
		rows = append(rows, row{it.ID, it.Name})
	}
	return rows, state.Pagination, nil
}

func (c groupCommands) search(ctx context.Context, text string) ([]row, error) {
	items, err := c.svc.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	rows := make([]row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row{it.ID, it.Name})
	}
	return rows, nil
}

func (c groupCommands) delete(ctx context.Context, id string) error {
	return c.svc.Delete(ctx, id)
}
