package validators

import "go.mongodb.org/mongo-driver/bson"

var ProgramValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"additionalProperties": true,

		"properties": bson.M{
			"title": bson.M{
				"bsonType": "string",
			},

			"name": bson.M{
				"bsonType": "string",
			},
		},
	},
}
