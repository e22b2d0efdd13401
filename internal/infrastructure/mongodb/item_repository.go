package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/inventario-lite/internal/domain"
	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre MongoDB.
// Qty y Price se guardan como Decimal128 para un viaje de ida y vuelta sin
// pérdida de precisión; CreatedAt como fecha BSON.
type ItemRepo struct {
	coll *mongo.Collection
}

// NewItemRepository construye el adaptador de persistencia para items.
func NewItemRepository(db *mongo.Database) *ItemRepo {
	return &ItemRepo{coll: db.Collection("items")}
}

// itemDoc representación BSON del item.
type itemDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Name      string               `bson:"name"`
	Qty       primitive.Decimal128 `bson:"qty"`
	Price     primitive.Decimal128 `bson:"price"`
	CreatedAt time.Time            `bson:"createdAt"`
}

// Create persiste un nuevo item. El almacén asigna _id y createdAt.
func (r *ItemRepo) Create(item *entity.Item) error {
	doc := itemDoc{
		ID:        primitive.NewObjectID(),
		Name:      item.Name,
		CreatedAt: time.Now().UTC(),
	}
	var err error
	if doc.Qty, err = toDecimal128(item.Qty); err != nil {
		return fmt.Errorf("%w: qty", domain.ErrInvalidInput)
	}
	if doc.Price, err = toDecimal128(item.Price); err != nil {
		return fmt.Errorf("%w: price", domain.ErrInvalidInput)
	}
	if _, err := r.coll.InsertOne(context.Background(), doc); err != nil {
		return storeErr("insert item", err)
	}
	item.ID = doc.ID.Hex()
	item.CreatedAt = doc.CreatedAt
	return nil
}

// GetByID obtiene un item por ID. Devuelve (nil, nil) si no existe; un ID
// que no es un ObjectID válido cuenta como inexistente.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc itemDoc
	err = r.coll.FindOne(context.Background(), bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storeErr("get item", err)
	}
	return toEntity(doc)
}

// List devuelve todos los items ordenados por createdAt descendente.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	ctx := context.Background()
	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, storeErr("list items", err)
	}
	defer cursor.Close(ctx)

	items := make([]*entity.Item, 0)
	for cursor.Next(ctx) {
		var doc itemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, storeErr("decode item", err)
		}
		it, err := toEntity(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := cursor.Err(); err != nil {
		return nil, storeErr("list items", err)
	}
	return items, nil
}

// Update reemplaza name, qty y price del documento indicado.
func (r *ItemRepo) Update(item *entity.Item) error {
	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return domain.ErrNotFound
	}
	qty, err := toDecimal128(item.Qty)
	if err != nil {
		return fmt.Errorf("%w: qty", domain.ErrInvalidInput)
	}
	price, err := toDecimal128(item.Price)
	if err != nil {
		return fmt.Errorf("%w: price", domain.ErrInvalidInput)
	}
	res, err := r.coll.UpdateByID(context.Background(), oid, bson.M{
		"$set": bson.M{"name": item.Name, "qty": qty, "price": price},
	})
	if err != nil {
		return storeErr("update item", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el documento por ID. Un ID ausente devuelve ErrNotFound.
func (r *ItemRepo) Delete(id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.coll.DeleteOne(context.Background(), bson.M{"_id": oid})
	if err != nil {
		return storeErr("delete item", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toEntity(doc itemDoc) (*entity.Item, error) {
	qty, err := fromDecimal128(doc.Qty)
	if err != nil {
		return nil, storeErr("decode qty", err)
	}
	price, err := fromDecimal128(doc.Price)
	if err != nil {
		return nil, storeErr("decode price", err)
	}
	return &entity.Item{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Qty:       qty,
		Price:     price,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(v.String())
}

// storeErr marca el fallo como indisponibilidad del almacén sin perder la
// causa original; el handler lo mapea a respuesta 5xx.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}
