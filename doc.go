/*
Package ecscore provides an archetype-based Entity-Component-System (ECS)
store for games and simulations, plus the access-descriptor vocabulary a
parallel scheduler (see github.com/forgecs/ecscore/schedule) needs to run
systems against it safely.

Entities with the same component set live together in one Archetype, stored
as struct-of-arrays columns for cache-friendly iteration. Entities carry a
generational id so a reused storage slot is never confused with the entity
that previously occupied it.

Core Concepts:

  - EntityId: a generational (index, generation) identifier for a game object.
  - Component: a registered data type that can be attached to entities.
  - Archetype: the set of entities sharing one exact component set.
  - Query: a required/excluded component shape that yields matching archetypes.
  - World: the facade that owns the registry, storage, archetypes and resources.

Basic usage:

	world := ecscore.NewWorld()
	position := ecscore.RegisterComponent[Position](world)
	velocity := ecscore.RegisterComponent[Velocity](world)

	world.Spawn(ecscore.With(position, Position{}), ecscore.With(velocity, Velocity{X: 1}))

	for it := ecscore.Query2(world, position, velocity); ; {
		_, pos, vel, ok := it.Next()
		if !ok {
			break
		}
		pos.X += vel.X
	}

ecscore is the storage and query layer of a larger engine; the parallel
system scheduler lives in the sibling schedule package and is the only
caller allowed to hand out write access to more than one system per tick.
*/
package ecscore
