package ecs

// System represents a behavior that operates on entities with specific components.
// Systems may declare Query and Singleton fields; the Scheduler initializes them on
// registration and refreshes every Query snapshot right before the system executes.
type System interface {
	Execute(frame *UpdateFrame)
}
