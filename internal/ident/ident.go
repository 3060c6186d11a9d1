// Package ident generates activity identities. IDs are snowflake values, so
// they are time-ordered like the millisecond tokens the browser form used
// while staying unique when several rows are added within one millisecond.
package ident

import (
	"errors"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// ActivityPrefix is prepended to every generated activity identity.
const ActivityPrefix = "act_"

const maxNode = 1023

var (
	defaultOnce sync.Once
	defaultGen  *Generator
	defaultErr  error

	errInvalidNode = errors.New("ident: node id must be between 0 and 1023")
)

// Generator hands out activity identities from a single snowflake node.
type Generator struct {
	node *snowflake.Node
}

// New constructs a generator bound to the given node id.
func New(nodeID int64) (*Generator, error) {
	if nodeID < 0 || nodeID > maxNode {
		return nil, errInvalidNode
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &Generator{node: node}, nil
}

// Default returns the process-wide generator (node 1).
func Default() *Generator {
	defaultOnce.Do(func() {
		defaultGen, defaultErr = New(1)
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultGen
}

// NextActivityID returns a fresh activity identity such as "act_1794...".
func (g *Generator) NextActivityID() string {
	return ActivityPrefix + strconv.FormatInt(g.node.Generate().Int64(), 10)
}
