package resource

import "github.com/fhuszti/tourism-ms-go/internal/model"

// Reconcile decides the media a record keeps after an update and the files
// that must go.
//
// New uploads replace everything not explicitly kept. Without new uploads
// nothing is ever deleted: a keep list then only narrows what the record
// references, and the files it leaves out stay in storage.
func Reconcile(oldMedia, newMedia model.MediaSet, keep *model.MediaSet) (finalMedia, toDelete model.MediaSet) {
	oldMedia = oldMedia.Dedupe()
	newMedia = newMedia.Dedupe()

	switch {
	case len(newMedia) > 0 && keep != nil:
		finalMedia = append(append(model.MediaSet{}, *keep...), newMedia...).Dedupe()
		toDelete = oldMedia.Without(*keep)
	case len(newMedia) > 0:
		finalMedia = newMedia
		toDelete = oldMedia
	case keep != nil:
		finalMedia = keep.Dedupe()
		toDelete = model.MediaSet{}
	default:
		finalMedia = oldMedia
		toDelete = model.MediaSet{}
	}

	return finalMedia, toDelete.Without(finalMedia)
}
