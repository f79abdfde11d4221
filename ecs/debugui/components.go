package debugui

import (
	"github.com/plus3/shmup/ecs"
)

type PerformanceStatsComponent struct {
	history       *frameHistory
	systemHistory map[string]*frameHistory
}

type ArchetypeViewerComponent struct {
	selectedArchId *uint32
	sortColumn     int
	sortAscending  bool
}

type EntityInspectorComponent struct {
	selectedEntityId   ecs.EntityId
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}
