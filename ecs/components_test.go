package ecs_test

import "github.com/plus3/shmup/ecs"

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Health struct {
	Current, Max int
}

type Name string

type Pilot struct{}

type Ammo int32

type Clock struct {
	Frames int
	Sim    float64
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Pilot](registry)
	ecs.RegisterComponent[Ammo](registry)
	return registry
}

func newTestStorage() *ecs.Storage {
	return ecs.NewStorage(newTestRegistry())
}

// recorder is an ecs.Observer that keeps the order of notifications.
type recorder struct {
	storage *ecs.Storage
	events  []string
}

func (r *recorder) EntitySpawned(id ecs.EntityId) {
	r.events = append(r.events, "spawn "+r.name(id))
}

func (r *recorder) EntityDeleted(id ecs.EntityId) {
	r.events = append(r.events, "delete "+r.name(id))
}

func (r *recorder) name(id ecs.EntityId) string {
	if name := ecs.ReadComponent[Name](r.storage, id); name != nil {
		return string(*name)
	}
	return "?"
}
