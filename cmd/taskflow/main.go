package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"

	"github.com/taskflow/taskflow/internal/classify"
	"github.com/taskflow/taskflow/internal/config"
	"github.com/taskflow/taskflow/internal/event"
	"github.com/taskflow/taskflow/internal/gateway"
	"github.com/taskflow/taskflow/internal/projection"
	"github.com/taskflow/taskflow/internal/store"
	"github.com/taskflow/taskflow/internal/task"
	"github.com/taskflow/taskflow/pkg/cerr"
	"github.com/taskflow/taskflow/pkg/clog"
)

var (
	app = kingpin.New("taskflow", "Task-management dashboard core")

	// Task commands
	createCmd         = app.Command("create", "Create a new task")
	createTitle       = createCmd.Arg("title", "Task title").Required().String()
	createDescription = createCmd.Flag("description", "Task description").String()
	createAssignee    = createCmd.Flag("assignee", "Assignee member ID").String()
	createPriority    = createCmd.Flag("priority", "Task priority").Default("MEDIUM").String()
	createCategory    = createCmd.Flag("category", "Task category").Default("FEATURE").String()
	createDue         = createCmd.Flag("due", "Due date (YYYY-MM-DD)").Required().String()

	listCmd    = app.Command("list", "List tasks")
	listSearch = listCmd.Flag("search", "Search term over title and description").String()
	listStatus = listCmd.Flag("status", "Status filter").Default(projection.StatusFilterAll).String()

	boardCmd = app.Command("board", "Show the status board")

	moveCmd    = app.Command("move", "Move a task to a new status")
	moveID     = moveCmd.Arg("id", "Task ID").Required().String()
	moveStatus = moveCmd.Arg("status", "Target status").Required().String()

	calendarCmd  = app.Command("calendar", "Show tasks due on a date")
	calendarDate = calendarCmd.Flag("date", "Date (YYYY-MM-DD), defaults to today").String()

	statsCmd = app.Command("stats", "Show completion, category and team stats")

	teamCmd    = app.Command("team", "List team members")
	teamSearch = teamCmd.Flag("search", "Search term over name and email").String()

	// Notification commands
	notifyCmd = app.Command("notifications", "Notification inbox commands")

	notifyListCmd = notifyCmd.Command("list", "List notifications")
	notifyListTab = notifyListCmd.Flag("tab", "Tab: all, unread, tasks, team, system").Default("all").String()

	notifyReadCmd = notifyCmd.Command("read", "Mark a notification as read")
	notifyReadID  = notifyReadCmd.Arg("id", "Notification ID").Required().String()

	notifyReadAllCmd = notifyCmd.Command("read-all", "Mark all notifications as read")

	// Maintenance commands
	reconcileCmd = app.Command("reconcile", "Run one overdue sweep")

	watchCmd = app.Command("watch", "Run the overdue reconciler and snapshot watcher")
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	setupLogger(env)

	if err := run(command, env); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, v := range cerr.Violations(err) {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", v.Field, v.Description)
		}
		os.Exit(1)
	}
}

func setupLogger(env *config.Env) {
	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))
}

type appState struct {
	env   *config.Env
	repo  *store.YAMLRepository
	store *store.Store
	bus   *event.EventBus
	gw    *gateway.Gateway
}

// setup loads the snapshot and wires the bus, gateway and event logger.
func setup(ctx context.Context, env *config.Env) (*appState, error) {
	repo := store.NewYAMLRepository(env.SnapshotFile)
	snap, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	st := store.New(env.OrgID)
	if err := st.Replace(snap); err != nil {
		return nil, err
	}

	bus, err := event.NewEventBus()
	if err != nil {
		return nil, err
	}
	eventLogger, err := event.NewEventLogger(env.EventLogDir)
	if err != nil {
		return nil, err
	}
	event.RegisterEventLogger(bus, eventLogger)
	if err := bus.Start(ctx); err != nil {
		return nil, err
	}
	<-bus.Running()

	return &appState{
		env:   env,
		repo:  repo,
		store: st,
		bus:   bus,
		gw:    gateway.New(st, bus),
	}, nil
}

// save hands the updated snapshot back to the persistence layer.
func (a *appState) save() error {
	return a.repo.Save(a.store.Snapshot())
}

func (a *appState) close() {
	// give the in-process bus a moment to drain before closing
	time.Sleep(50 * time.Millisecond)
	if err := a.bus.Stop(); err != nil {
		slog.Warn("failed to stop event bus", "error", err)
	}
}

func run(command string, env *config.Env) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = clog.ContextWithSlog(ctx)
	clog.AddAttribute(ctx, "org", env.OrgID)
	clog.AddAttribute(ctx, "op", command)

	a, err := setup(ctx, env)
	if err != nil {
		return err
	}
	defer a.close()

	start := time.Now()
	err = dispatch(ctx, command, a)
	clog.AddAttribute(ctx, "duration", time.Since(start))
	if err != nil {
		clog.AddError(ctx, err)
		logOutcome(ctx, err)
		return err
	}
	slog.DebugContext(ctx, "Finished")
	return nil
}

func dispatch(ctx context.Context, command string, a *appState) error {
	switch command {
	case createCmd.FullCommand():
		return handleCreate(ctx, a)
	case listCmd.FullCommand():
		return handleList(a)
	case boardCmd.FullCommand():
		return handleBoard(a)
	case moveCmd.FullCommand():
		return handleMove(ctx, a)
	case calendarCmd.FullCommand():
		return handleCalendar(a)
	case statsCmd.FullCommand():
		return handleStats(a)
	case teamCmd.FullCommand():
		return handleTeam(a)
	case notifyListCmd.FullCommand():
		return handleNotifyList(a)
	case notifyReadCmd.FullCommand():
		return handleNotifyRead(ctx, a)
	case notifyReadAllCmd.FullCommand():
		return handleNotifyReadAll(ctx, a)
	case reconcileCmd.FullCommand():
		return handleReconcile(ctx, a)
	case watchCmd.FullCommand():
		return handleWatch(ctx, a)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// logOutcome logs a failed command at a level matching its error code, so
// caller mistakes do not show up as server-side errors.
func logOutcome(ctx context.Context, err error) {
	msg := "command failed"
	switch clog.CodeToLevel(cerr.CodeOf(err)) {
	case clog.LevelError:
		slog.ErrorContext(ctx, msg)
	case clog.LevelWarn:
		slog.WarnContext(ctx, msg)
	case clog.LevelInfo:
		slog.InfoContext(ctx, msg)
	case clog.LevelDebug:
		slog.DebugContext(ctx, msg)
	}
}

func handleCreate(ctx context.Context, a *appState) error {
	due, err := time.Parse(time.DateOnly, *createDue)
	if err != nil {
		return cerr.NewError(cerr.InvalidArgument, "invalid task", err).
			AddViolation("dueDate", "must be YYYY-MM-DD")
	}

	t, err := a.gw.CreateTask(ctx, &task.CreateTaskRequest{
		Title:       *createTitle,
		Description: *createDescription,
		Assignee:    *createAssignee,
		Priority:    task.Priority(*createPriority),
		Category:    task.Category(*createCategory),
		DueDate:     due,
	})
	if err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}

	fmt.Printf("Created %s: %s\n", t.ID, t.Title)
	return nil
}

func handleList(a *appState) error {
	snap := a.store.Snapshot()
	tasks := projection.FilterTasks(snap.Tasks, projection.TaskQuery{
		SearchTerm:   *listSearch,
		StatusFilter: *listStatus,
	})
	for _, t := range tasks {
		printTask(t)
	}
	fmt.Printf("%d task(s)\n", len(tasks))
	return nil
}

func handleBoard(a *appState) error {
	snap := a.store.Snapshot()
	board := projection.GroupTasksByStatus(snap.Tasks)
	for _, status := range task.Statuses() {
		fmt.Printf("%s (%d)\n", badge(classify.StatusKey(status), string(status)), len(board[status]))
		for _, t := range board[status] {
			fmt.Printf("  %s  %s  %s\n", t.ID, badge(classify.PriorityKey(t.Priority), string(t.Priority)), t.Title)
		}
	}
	return nil
}

func handleMove(ctx context.Context, a *appState) error {
	t, err := a.gw.TransitionTask(ctx, *moveID, task.Status(*moveStatus))
	if err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}

	fmt.Printf("Moved %s to %s\n", t.ID, badge(classify.StatusKey(t.Status), string(t.Status)))
	return nil
}

func handleCalendar(a *appState) error {
	date := time.Now()
	if *calendarDate != "" {
		var err error
		date, err = time.Parse(time.DateOnly, *calendarDate)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", *calendarDate, err)
		}
	}

	snap := a.store.Snapshot()
	events := projection.CalendarEventsForDate(snap.Tasks, date)
	fmt.Printf("%s\n", date.Format(time.DateOnly))
	for _, e := range events {
		fmt.Printf("  %s  %s  %s\n", e.ID, badge(classify.PriorityKey(e.Priority), string(e.Priority)), e.Title)
	}
	if len(events) == 0 {
		fmt.Println("  no deadlines")
	}
	return nil
}

func handleStats(a *appState) error {
	snap := a.store.Snapshot()

	d := projection.CompletionDistribution(snap.Tasks)
	fmt.Printf("Tasks: %d total\n", d.Total)
	fmt.Printf("  completed   %3d (%d%%)\n", d.Completed.Count, d.Completed.Percent)
	fmt.Printf("  in progress %3d (%d%%)\n", d.InProgress.Count, d.InProgress.Percent)
	fmt.Printf("  todo        %3d (%d%%)\n", d.Todo.Count, d.Todo.Percent)
	fmt.Printf("  overdue     %3d (%d%%)\n", d.Overdue.Count, d.Overdue.Percent)

	fmt.Println("Recent:")
	for _, t := range projection.RecentTasks(snap.Tasks, 5) {
		fmt.Printf("  %s  %s  %s\n",
			t.ID, badge(classify.StatusKey(t.Status), string(t.Status)), t.Title)
	}

	fmt.Println("Categories:")
	for _, cs := range projection.CategoryStats(snap.Tasks) {
		fmt.Printf("  %-14s %d/%d (%d%%)\n",
			badge(classify.CategoryKey(cs.Category), string(cs.Category)), cs.Completed, cs.Total, cs.Percent)
	}

	rs := projection.TeamRosterStats(snap.Members)
	fmt.Printf("Team: %d member(s), %d active (%d%%), %d pending, avg %d task(s) assigned\n",
		rs.Total, rs.Active, rs.ActivePercent, rs.Pending, rs.AvgAssigned)
	for _, m := range snap.Members {
		fmt.Printf("  %-20s %s  %d%% efficiency\n",
			m.Name, badge(classify.RoleKey(m.Role), string(m.Role)), projection.TeamEfficiency(m))
	}
	return nil
}

func handleTeam(a *appState) error {
	snap := a.store.Snapshot()
	members := projection.FilterMembers(snap.Members, *teamSearch)
	for _, m := range members {
		fmt.Printf("%s  %-20s %s  %s  %s  %d/%d task(s), %d%% efficiency\n",
			m.ID, m.Name, m.Email,
			badge(classify.RoleKey(m.Role), string(m.Role)),
			badge(classify.MemberStatusKey(m.Status), string(m.Status)),
			m.TasksCompleted, m.TasksAssigned, projection.TeamEfficiency(m))
	}
	fmt.Printf("%d member(s)\n", len(members))
	return nil
}

func handleNotifyList(a *appState) error {
	snap := a.store.Snapshot()
	tabs := projection.PartitionNotifications(snap.Notifications)

	var view = tabs.All
	switch *notifyListTab {
	case "all":
	case "unread":
		view = tabs.Unread
	case "tasks":
		view = tabs.Tasks
	case "team":
		view = tabs.Team
	case "system":
		view = tabs.System
	default:
		return fmt.Errorf("unknown tab %q", *notifyListTab)
	}

	for _, n := range view {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		emphasis := classify.NotificationEmphasis(n.Type, n.Priority)
		fmt.Printf("%s [%s] %s  %s  (from %s, %s)\n",
			marker, classify.NotificationIcon(n.Type), n.ID, badge(emphasis, n.Title), n.From,
			n.Timestamp.Format(time.RFC3339))
	}
	fmt.Printf("%d unread\n", projection.UnreadCount(snap.Notifications))
	return nil
}

func handleNotifyRead(ctx context.Context, a *appState) error {
	if _, err := a.gw.MarkRead(ctx, *notifyReadID); err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}

	fmt.Printf("Marked %s as read\n", *notifyReadID)
	return nil
}

func handleNotifyReadAll(ctx context.Context, a *appState) error {
	count, err := a.gw.MarkAllRead(ctx)
	if err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}

	fmt.Printf("Marked %d notification(s) as read\n", count)
	return nil
}

func handleReconcile(ctx context.Context, a *appState) error {
	swept, err := a.gw.ReconcileOverdue(ctx)
	if err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}

	for _, t := range swept {
		fmt.Printf("Overdue: %s  %s (due %s)\n", t.ID, t.Title, t.DueDate.Format(time.DateOnly))
	}
	fmt.Printf("%d task(s) marked overdue\n", len(swept))
	return nil
}

// handleWatch runs until interrupted: the reconciler sweeps on its
// interval and the snapshot watcher follows external rewrites.
func handleWatch(ctx context.Context, a *appState) error {
	reconciler := gateway.NewReconciler(a.gw, a.env.OverdueInterval)
	if err := reconciler.Start(ctx); err != nil {
		return err
	}
	defer reconciler.Stop()

	if a.env.Watch {
		watcher := store.NewWatcher(a.repo, a.store)
		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				slog.Error("snapshot watcher stopped", "error", err)
			}
		}()
	}

	slog.Info("watching", "org", a.env.OrgID, "interval", a.env.OverdueInterval.String())
	<-ctx.Done()
	return a.save()
}

func printTask(t *task.Task) {
	fmt.Printf("%s  %s  %s  %s  %3d%%  due %s  %s\n",
		t.ID,
		badge(classify.StatusKey(t.Status), string(t.Status)),
		badge(classify.PriorityKey(t.Priority), string(t.Priority)),
		badge(classify.CategoryKey(t.Category), string(t.Category)),
		t.Progress,
		t.DueDate.Format(time.DateOnly),
		t.Title)
}

// badge renders a classification color key for the terminal.
func badge(key classify.ColorKey, s string) string {
	switch key {
	case classify.ColorGreen:
		return color.GreenString(s)
	case classify.ColorYellow:
		return color.YellowString(s)
	case classify.ColorBlue:
		return color.BlueString(s)
	case classify.ColorRed:
		return color.RedString(s)
	default:
		return s
	}
}
