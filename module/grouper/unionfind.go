/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package grouper

// DisjointSet is a union-find over any comparable key, with path compression and union by size
type DisjointSet[K comparable] struct {
	parent map[K]K
	size   map[K]int
}

// NewDisjointSet creates an empty DisjointSet
func NewDisjointSet[K comparable]() *DisjointSet[K] {
	return &DisjointSet[K]{parent: make(map[K]K), size: make(map[K]int)}
}

// Add inserts k as a singleton, it is a no-op for known keys
func (d *DisjointSet[K]) Add(k K) {
	if _, ok := d.parent[k]; ok {
		return
	}
	d.parent[k] = k
	d.size[k] = 1
}

// Find returns the root of k, adding k first when unknown
func (d *DisjointSet[K]) Find(k K) K {
	d.Add(k)
	root := k
	for d.parent[root] != root {
		root = d.parent[root]
	}
	for k != root {
		next := d.parent[k]
		d.parent[k] = root
		k = next
	}
	return root
}

// Union merges the sets of a and b and returns the new root
func (d *DisjointSet[K]) Union(a, b K) K {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return ra
	}
	if d.size[ra] < d.size[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	d.size[ra] += d.size[rb]
	delete(d.size, rb)
	return ra
}

// Connected reports whether a and b are in the same set
func (d *DisjointSet[K]) Connected(a, b K) bool {
	return d.Find(a) == d.Find(b)
}

// Len returns the number of known keys
func (d *DisjointSet[K]) Len() int {
	return len(d.parent)
}
