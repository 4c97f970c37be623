// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

// create a table for event records
const eventTableSchema = `
create table if not exists event (
	seq integer primary key autoincrement,
	name text,
	address blob(20),
	user blob(20),
	amount blob,
	data blob,
	time integer
);

CREATE INDEX if not exists nameIndex on event(name);
CREATE INDEX if not exists userIndex on event(user);
CREATE INDEX if not exists timeIndex on event(time);
`
