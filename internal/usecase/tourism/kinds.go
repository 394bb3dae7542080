package tourism

import (
	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/resource"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// Kinds name a resource in errors, logs and cache keys.
const (
	KindCity            = "city"
	KindArtsCulture     = "arts_culture"
	KindCafeteria       = "cafeteria"
	KindFestivalEvent   = "festival_event"
	KindPublicTransport = "public_transport"
)

// Categories are the blob store buckets holding each kind's media.
const (
	CategoryArtsCulture     = "arts-culture"
	CategoryCafeterias      = "cafeterias"
	CategoryFestivals       = "festivals"
	CategoryPublicTransport = "public-transport"
)

// Categories lists every bucket the service writes to.
func Categories() []string {
	return []string{CategoryArtsCulture, CategoryCafeterias, CategoryFestivals, CategoryPublicTransport}
}

type cityBound interface {
	resource.Resource
	CityRef() uuid.UUID
}

func cityReference[R cityBound](cities port.RecordStore[*model.City]) resource.Reference[R] {
	return resource.ReferenceTo[R, *model.City]("city_id", KindCity, func(r R) uuid.UUID { return r.CityRef() }, cities)
}

func newTx[R cityBound](schema resource.Schema[R], records port.RecordStore[R], cities port.RecordStore[*model.City], blobs port.BlobStore, cache resource.Invalidator, opts []resource.Option[R]) *resource.Transaction[R] {
	schema.References = append(schema.References, cityReference[R](cities))
	if cache != nil {
		opts = append([]resource.Option[R]{resource.WithCache[R](cache)}, opts...)
	}
	return resource.NewTransaction(schema, records, blobs, opts...)
}
