package nav

import "github.com/desertthunder/listenr/internal/route"

// Machine is the single owner of [State]. Pages never see it; they receive a
// navigation callback that ends in [Machine.Navigate].
type Machine struct {
	state     State
	history   History
	listeners []func(State)
}

// New derives the initial state from the history's current path. A bare root
// without a session starts on the landing view.
func New(history History, authenticated bool) *Machine {
	current := route.Decode(history.Path())
	if current.View == route.Home && !current.HasSelectors() && !authenticated {
		current.View = route.Landing
	}

	return &Machine{
		state: State{
			Current:  current,
			Previous: route.Target{View: route.Home},
		},
		history: history,
	}
}

// State returns a copy of the current state.
func (m *Machine) State() State { return m.state }

// Current is shorthand for State().Current.
func (m *Machine) Current() route.Target { return m.state.Current }

// Path returns the history's current path.
func (m *Machine) Path() string { return m.history.Path() }

// OnChange registers fn to run after every transition.
func (m *Machine) OnChange(fn func(State)) {
	m.listeners = append(m.listeners, fn)
}

// Navigate applies in and pushes the encoded target when it differs from the
// current path. This is the only place in-app navigation writes history.
func (m *Machine) Navigate(in Intent, env Env) State {
	m.state = Reduce(m.state, in, env)

	if path := route.Encode(m.state.Current); path != m.history.Path() {
		m.history.Push(path)
	}

	m.notify()
	return m.state
}

// NavigateChrome is the sidebar/header action. Profile always means the
// caller's own profile, and the sidebar closes.
func (m *Machine) NavigateChrome(v route.View, env Env) State {
	in := To(v)
	if v == route.Profile {
		in.Username = Clear()
	}
	m.state.SidebarOpen = false
	return m.Navigate(in, env)
}

// Cancel returns to the previous target, used by screens that represent an
// in-progress action.
func (m *Machine) Cancel(env Env) State {
	return m.Navigate(IntentFor(m.state.Previous), env)
}

// Pop handles a history traversal initiated outside the app. The current
// target is replaced wholesale from the path; previous is left alone.
func (m *Machine) Pop() State {
	m.state.Current = route.Decode(m.history.Path())
	m.notify()
	return m.state
}

// Back traverses history backwards and pops; false when there is nothing behind.
func (m *Machine) Back() bool {
	if !m.history.Back() {
		return false
	}
	m.Pop()
	return true
}

// Forward traverses history forwards and pops; false when there is nothing ahead.
func (m *Machine) Forward() bool {
	if !m.history.Forward() {
		return false
	}
	m.Pop()
	return true
}

// CanBack reports whether [Machine.Back] would move.
func (m *Machine) CanBack() bool { return m.history.CanBack() }

// CanForward reports whether [Machine.Forward] would move.
func (m *Machine) CanForward() bool { return m.history.CanForward() }

func (m *Machine) ToggleSidebar() {
	m.state.SidebarOpen = !m.state.SidebarOpen
}

func (m *Machine) CloseSidebar() {
	m.state.SidebarOpen = false
}

func (m *Machine) notify() {
	for _, fn := range m.listeners {
		fn(m.state)
	}
}
