package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alexanderramin/pinely/internal/intelligence"
	"github.com/alexanderramin/pinely/internal/llm"
	"github.com/alexanderramin/pinely/internal/repository"
	"github.com/alexanderramin/pinely/internal/service"
	"github.com/alexanderramin/pinely/internal/session"
	"github.com/alexanderramin/pinely/internal/testutil"
)

// firstRand always picks index 0 so random picks and fallback templates
// are predictable.
type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

// testApp wires a full App backed by an in-memory DB. client may be nil to
// exercise the offline path.
func testApp(t *testing.T, client llm.LLMClient) *App {
	t.Helper()
	storage := session.NewRepoStorage(repository.NewSQLiteKVRepo(testutil.NewTestDB(t)))

	organizer := intelligence.NewOrganizeService(client, nil)
	actions := intelligence.NewActionService(client, intelligence.WithRand(firstRand{}))

	return &App{
		Flow:      service.NewFlowService(storage, organizer, actions, firstRand{}),
		Organizer: organizer,
		Actions:   actions,
		Client:    client,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, "", args...)
}

func executeCmdWithInput(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}
