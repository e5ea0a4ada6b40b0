package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewRequestID generates a new globally unique KSUID string, used to tag
// requests in logs.
func NewRequestID() string {
	return ksuid.New().String()
}

// NewRowID generates a snowflake ID used as an application-assigned primary
// key. The node ID comes from the SNOWFLAKE_NODE environment variable and
// defaults to 1 when unset or unparseable.
func NewRowID() int64 {
	nodeOnce.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = parsed
			}
		}
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			// out-of-range node id; node 1 is always valid
			n, _ = snowflake.NewNode(1)
		}
		node = n
	})
	return node.Generate().Int64()
}
