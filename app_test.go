package gungale

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_addResources(t *testing.T) {
	// Test setup
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	// Add a resource
	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)

	// Check that the resource was added
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	// Expect panic when trying to add the same type of resource again
	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")
}

func TestApp_Resource(t *testing.T) {
	app := newApp()
	assert.Nil(t, Resource[MockResource1](app))

	app.addResources(NewMockResource1("r1"))
	r := Resource[MockResource1](app)
	require.NotNil(t, r)
	assert.Equal(t, "r1", r.name)
}

func TestApp_callSystem(t *testing.T) {
	app := newApp()
	app.addResources(NewMockResource1("r1"), NewMockResource2("r2"))

	var got1, got2 string
	var gotCmd *Commands
	app.callSystem(func(r1 *MockResource1, cmd *Commands, r2 *MockResource2) {
		got1, got2, gotCmd = r1.name, r2.name, cmd
	})

	assert.Equal(t, "r1", got1)
	assert.Equal(t, "r2", got2)
	require.NotNil(t, gotCmd)
	assert.Same(t, app, gotCmd.app)
}

func TestApp_callSystemUnresolved(t *testing.T) {
	app := newApp()
	assert.Panics(t, func() {
		app.callSystem(func(r *MockResource1) {})
	})
}

func TestApp_StepRunsStagesInOrder(t *testing.T) {
	app := newApp()
	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}

	app.UseSystem(System(record("finale")).InStage(Finale))
	app.UseSystem(System(record("update")))
	app.UseSystem(System(record("prelude")).InStage(Prelude))
	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("update2")).InStage(Update))

	app.Step()

	assert.Equal(t, []string{"prelude", "update", "update2", "render", "finale"}, order)
	assert.Equal(t, uint64(1), app.Frames())
}

func TestApp_UseStage(t *testing.T) {
	app := newApp()
	physics := Stage{Name: "Physics"}
	app.UseStage(physics, AfterStage(Update))

	var order []string
	app.UseSystem(System(func() { order = append(order, "physics") }).InStage(physics))
	app.UseSystem(System(func() { order = append(order, "post") }).InStage(PostUpdate))
	app.UseSystem(System(func() { order = append(order, "update") }).InStage(Update))
	app.Step()

	assert.Equal(t, []string{"update", "physics", "post"}, order)

	assert.PanicsWithValue(t, "Stage Missing doesn't exist", func() {
		app.UseSystem(System(func() {}).InStage(Stage{Name: "Missing"}))
	})
	assert.PanicsWithValue(t, "Stage Missing not found", func() {
		app.UseStage(Stage{Name: "Other"}, BeforeStage(Stage{Name: "Missing"}))
	})
}

func TestApp_RunStopsOnExit(t *testing.T) {
	app := newApp()
	calls := 0
	app.UseSystem(System(func(cmd *Commands) {
		calls++
		if calls == 3 {
			cmd.Exit()
		}
	}))

	app.Run()

	assert.True(t, app.Exiting())
	assert.Equal(t, 3, calls)
	assert.Equal(t, uint64(3), app.Frames())
}
