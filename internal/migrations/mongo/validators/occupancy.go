package validators

import "go.mongodb.org/mongo-driver/bson"

var OccupancyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"room_id",
			"night",
			"booking_id",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"room_id": bson.M{
				"bsonType": "string",
			},

			"night": bson.M{
				"bsonType": "date",
			},

			"booking_id": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
