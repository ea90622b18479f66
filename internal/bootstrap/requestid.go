package bootstrap

import (
	"encoding/binary"
	"hash/fnv"
	"os"

	"github.com/mbellotti/go-visit-counter/pkg/snowflake"
	snowflakeImpl "github.com/mbellotti/go-visit-counter/pkg/snowflake/implementation"
)

// InitializeRequestIDs builds the request id generator with a node id derived
// from the host name, so replicas never mint colliding ids.
func InitializeRequestIDs() (snowflake.Snowflake, error) {
	nodeID, err := hostNodeID()
	if err != nil {
		return nil, err
	}
	return snowflakeImpl.NewSnowflake(nodeID)
}

func hostNodeID() (int64, error) {
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		var err error
		hostname, err = os.Hostname()
		if err != nil {
			return 0, err
		}
	}

	h := fnv.New64a()
	h.Write([]byte(hostname))
	nodeID := int64(binary.BigEndian.Uint64(h.Sum(nil)) % 1024)

	return nodeID, nil
}
