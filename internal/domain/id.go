package domain

import "github.com/bwmarrin/snowflake"

var idNode *snowflake.Node

func init() {
	var err error
	idNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// NewID returns a unique, time-ordered id. Snowflake ids keep the
// timestamp-derived ordering the legacy data relied on without the
// collision risk of raw clock values.
func NewID() int64 {
	return idNode.Generate().Int64()
}
