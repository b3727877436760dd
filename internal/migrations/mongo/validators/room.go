package validators

import "go.mongodb.org/mongo-driver/bson"

// Rooms are seeded by external inventory tooling with historically messy
// field types, so the schema stays permissive: only shape, never strict
// numeric types.
var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType": "string",
			},

			"slug": bson.M{
				"bsonType": "string",
			},

			"type": bson.M{
				"bsonType": "string",
			},

			"available": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
