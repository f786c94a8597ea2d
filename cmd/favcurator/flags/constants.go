package flags

const Verbose = `v`
const Quiet = `q`
const Plain = `p`
const Help = `h`
const Page = `page`
const InitWithSqlite = `sqlite`
const ListAll = `all`
const OpenPrintOnly = `print`
const PruneWithoutConfirmation = `no-confirm`
