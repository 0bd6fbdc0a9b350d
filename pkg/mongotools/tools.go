package mongotools

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nikmy/datamaps/pkg/errors"
)

// Merge flattens several field conditions into one query document.
// Later conditions on the same field win.
func Merge(fieldKVs ...bson.M) bson.M {
	s := make(bson.M, len(fieldKVs))
	for _, kv := range fieldKVs {
		for k, v := range kv {
			s[k] = v
		}
	}
	return s
}

func All() bson.M {
	return bson.M{}
}

func ID(id string) bson.M {
	return bson.M{"_id": id}
}

func Field(field string, value any) bson.M {
	return bson.M{field: value}
}

func In[T any](values []T) bson.M {
	return bson.M{"$in": values}
}

// FilterFunc drains the cursor, keeping the items filterFunc accepts.
// A nil filterFunc keeps everything. The cursor is closed on return.
func FilterFunc[T any](ctx context.Context, c *mongo.Cursor, filterFunc func(T) bool) ([]T, error) {
	defer c.Close(ctx)

	filtered := make([]T, 0, c.RemainingBatchLength())
	for c.Next(ctx) {
		var item T
		err := c.Decode(&item)
		if err != nil {
			return nil, errors.WrapFail(err, "decode item")
		}

		if filterFunc == nil || filterFunc(item) {
			filtered = append(filtered, item)
		}
	}

	return filtered, errors.WrapFail(c.Err(), "iterate cursor")
}
