/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"fmt"
	"sort"
	"strings"

	"techtradechain.com/txscheduler/common"
)

// CycleError describes one call cycle found by ValidateCallGraph
type CycleError struct {
	// Members of the strongly connected component, sorted
	Members []common.MethodId
	// Path walks the cycle and ends where it started
	Path []common.MethodId
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("call cycle detected: %s", strings.Join(e.Path, " -> "))
}

// ValidateCallGraph reports every call cycle among decls.
//
// It does not change registration: RegisterMethod keeps rejecting cycle members on its own.
// Callees that are not declared are treated as leaves.
func ValidateCallGraph(decls []*common.MethodDecl) []*CycleError {
	graph := make(map[common.MethodId][]common.MethodId, len(decls))
	nodes := make([]common.MethodId, 0, len(decls))
	for _, d := range decls {
		if _, ok := graph[d.Id]; !ok {
			nodes = append(nodes, d.Id)
		}
		graph[d.Id] = append(graph[d.Id], d.CallingSet...)
	}
	sort.Strings(nodes)

	var cycles []*CycleError
	for _, scc := range tarjanSCC(nodes, graph) {
		if len(scc) == 1 && !hasSelfLoop(scc[0], graph) {
			continue
		}
		sort.Strings(scc)
		cycles = append(cycles, &CycleError{Members: scc, Path: cyclePath(scc, graph)})
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i].Members[0] < cycles[j].Members[0] })
	return cycles
}

func hasSelfLoop(node common.MethodId, graph map[common.MethodId][]common.MethodId) bool {
	for _, callee := range graph[node] {
		if callee == node {
			return true
		}
	}
	return false
}

// tarjanSCC returns the strongly connected components of graph
func tarjanSCC(nodes []common.MethodId, graph map[common.MethodId][]common.MethodId) [][]common.MethodId {
	var (
		index   = 0
		stack   []common.MethodId
		indices = make(map[common.MethodId]int)
		lowlink = make(map[common.MethodId]int)
		onStack = make(map[common.MethodId]bool)
		sccs    [][]common.MethodId
	)

	var strongConnect func(v common.MethodId)
	strongConnect = func(v common.MethodId) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, declared := graph[w]; !declared {
				continue
			}
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []common.MethodId
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}
	return sccs
}

// cyclePath returns the shortest walk inside scc from its first member back to it
func cyclePath(scc []common.MethodId, graph map[common.MethodId][]common.MethodId) []common.MethodId {
	start := scc[0]
	if len(scc) == 1 {
		return []common.MethodId{start, start}
	}
	members := make(map[common.MethodId]bool, len(scc))
	for _, m := range scc {
		members[m] = true
	}
	parent := map[common.MethodId]common.MethodId{start: ""}
	queue := []common.MethodId{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		callees := append([]common.MethodId(nil), graph[current]...)
		sort.Strings(callees)
		for _, callee := range callees {
			if callee == start {
				return backtrack(parent, current, start)
			}
			if _, seen := parent[callee]; seen || !members[callee] {
				continue
			}
			parent[callee] = current
			queue = append(queue, callee)
		}
	}
	// unreachable for a strongly connected scc
	return []common.MethodId{start}
}

// backtrack rebuilds start -> ... -> last -> start from the BFS parents
func backtrack(parent map[common.MethodId]common.MethodId, last, start common.MethodId) []common.MethodId {
	path := []common.MethodId{start}
	for node := last; node != start; node = parent[node] {
		path = append(path, node)
	}
	path = append(path, start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
