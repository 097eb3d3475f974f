package constvars

import "time"

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_ACTOR_KEY                ContextKey = "actor"
)

const (
	REQUEST_ID_PREFIX = "HLTHMT_SVC_"
)

const (
	MongoFieldID     = "_id"
	MongoFieldUserID = "userId"
)

const (
	MongoCollectionPatients       = "patients"
	MongoCollectionDoctors        = "doctors"
	MongoCollectionAppointments   = "appointments"
	MongoCollectionInvoices       = "invoices"
	MongoCollectionMedicalRecords = "medicalrecords"
	MongoCollectionPrescriptions  = "prescriptions"
)

const (
	ProfileStoreMongo  = "mongo"
	ProfileStoreMemory = "memory"
)

const (
	// profile_account:<kind>:<profileId> -> accountId
	RedisKeyProfileAccountFormat = "profile_account:%s:%s"
)

const (
	DefaultResolverCacheTTL = 10 * time.Minute
	MaxBatchAuthorizeSize   = 200
)

const (
	IntegrityEventDanglingReference = "dangling_reference"
)
