package display

import (
	"github.com/galaport/wallet/internal/domain"
)

// Collection groups owned NFT instances of one token class.
type Collection struct {
	Key         domain.TokenKey `json:"tokenClass"`
	Name        string          `json:"name"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
	OwnedCount  int             `json:"ownedCount"`
}

// ToCollections groups NFT display records by token class, counting owned
// instances. The first-seen record's metadata seeds the collection entry;
// iteration order of the input is preserved in the output.
func ToCollections(nfts []NFT, metaByKey map[string]domain.TokenMetadata) []Collection {
	index := make(map[string]int)
	var collections []Collection

	for _, nft := range nfts {
		key := nft.Key.String()
		if i, seen := index[key]; seen {
			collections[i].OwnedCount++
			continue
		}

		meta := metaByKey[key]
		name := meta.Name
		if name == "" {
			name = nft.Name
		}
		index[key] = len(collections)
		collections = append(collections, Collection{
			Key:         nft.Key,
			Name:        name,
			Image:       meta.Image,
			Description: meta.Description,
			OwnedCount:  1,
		})
	}

	return collections
}
