package utils

import (
	"strconv"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	serialNode *snowflake.Node
	serialOnce sync.Once
	serialErr  error
)

// InitSerialNode kart seri kodu üreticisini başlatır. Node ID örnekler
// arasında benzersiz olmalıdır (SNOWFLAKE_NODE_ID).
func InitSerialNode(nodeID int64) error {
	serialOnce.Do(func() {
		serialNode, serialErr = snowflake.NewNode(nodeID)
	})
	return serialErr
}

// GenerateSerialCode değişmez, sıralanabilir bir kart seri kodu üretir.
// Snowflake ID base36'ya çevrilip KV- öneki ile yazılır (NFC baskıda
// kullanılan kod budur).
func GenerateSerialCode() (string, error) {
	if serialNode == nil {
		if err := InitSerialNode(1); err != nil {
			return "", err
		}
	}
	id := serialNode.Generate().Int64()
	return "KV-" + strings.ToUpper(strconv.FormatInt(id, 36)), nil
}
